package store

import (
	"context"
	"errors"
	"testing"

	"spoilerguard/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type recTracer struct{ events []pg.QueryEvent }

func (r *recTracer) OnQuery(_ context.Context, ev pg.QueryEvent) { r.events = append(r.events, ev) }

type fakePgxRow struct{ err error }

func (r fakePgxRow) Scan(dst ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dst[0].(*string)) = "v1"
	return nil
}

// fakePgxRows embeds pgx.Rows so methods the adapter never calls stay unimplemented
type fakePgxRows struct {
	pgx.Rows
	n int
}

func (r *fakePgxRows) Next() bool {
	r.n++
	return r.n == 1
}

func (r *fakePgxRows) Scan(dst ...any) error {
	*(dst[0].(*string)) = "cache_ep1"
	return nil
}
func (r *fakePgxRows) Err() error { return nil }
func (r *fakePgxRows) Close()     {}
func (r *fakePgxRows) FieldDescriptions() []pgconn.FieldDescription {
	return []pgconn.FieldDescription{{Name: "k"}, {Name: "v"}}
}

type fakePgx struct {
	execErr  error
	queryErr error
	rowErr   error
}

func (f fakePgx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("INSERT 0 1"), f.execErr
}

func (f fakePgx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakePgxRows{}, nil
}

func (f fakePgx) QueryRow(context.Context, string, ...any) pgx.Row { return fakePgxRow{err: f.rowErr} }

func TestTraced_ExecQueryRowEmit(t *testing.T) {
	tr := &recTracer{}
	q := traced{q: fakePgx{}, tracer: tr}
	ctx := context.Background()

	tag, err := q.Exec(ctx, "INSERT INTO spoiler_kv (k, v) VALUES ($1, $2)", "cache_ep1", "{}")
	if err != nil || tag.RowsAffected() != 1 {
		t.Fatalf("exec tag=%v err=%v", tag, err)
	}

	rows, err := q.Query(ctx, "SELECT k, v FROM spoiler_kv")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if cols := rows.Columns(); len(cols) != 2 || cols[0] != "k" {
		t.Fatalf("columns = %v", cols)
	}
	var k string
	if !rows.Next() || rows.Scan(&k) != nil || k != "cache_ep1" || rows.Next() {
		t.Fatalf("rows iteration broken, k=%q", k)
	}
	rows.Close()

	var v string
	if err := q.QueryRow(ctx, "SELECT v FROM spoiler_kv WHERE k = $1", "x").Scan(&v); err != nil || v != "v1" {
		t.Fatalf("query row v=%q err=%v", v, err)
	}

	if len(tr.events) != 3 {
		t.Fatalf("events = %d, want 3", len(tr.events))
	}
	if len(tr.events[0].Args) != 2 || tr.events[0].Slow {
		t.Fatalf("exec event %+v", tr.events[0])
	}
}

func TestTraced_ErrorsReachTracer(t *testing.T) {
	boom := errors.New("boom")
	tr := &recTracer{}
	q := traced{q: fakePgx{execErr: boom, queryErr: boom, rowErr: boom}, tracer: tr}
	ctx := context.Background()

	if _, err := q.Exec(ctx, "x"); !errors.Is(err, boom) {
		t.Fatalf("exec err = %v", err)
	}
	if _, err := q.Query(ctx, "x"); !errors.Is(err, boom) {
		t.Fatalf("query err = %v", err)
	}
	var s string
	if err := q.QueryRow(ctx, "x").Scan(&s); !errors.Is(err, boom) {
		t.Fatalf("row err = %v", err)
	}
	for i, ev := range tr.events {
		if !errors.Is(ev.Err, boom) {
			t.Fatalf("event %d missing error: %+v", i, ev)
		}
	}
}

func TestTraced_SlowThreshold(t *testing.T) {
	tr := &recTracer{}
	q := traced{q: fakePgx{}, tracer: tr, slowUS: 1}
	_, _ = q.Exec(context.Background(), "x")
	// a zero threshold never marks anything slow
	q.slowUS = 0
	_, _ = q.Exec(context.Background(), "x")
	if len(tr.events) != 2 || tr.events[1].Slow {
		t.Fatalf("events %+v", tr.events)
	}
}

func TestTraced_NilTracer(t *testing.T) {
	q := traced{q: fakePgx{}}
	if _, err := q.Exec(context.Background(), "x"); err != nil {
		t.Fatalf("exec: %v", err)
	}
}

func TestPGAdapter_NilPing(t *testing.T) {
	var a *pgAdapter
	if err := a.Ping(context.Background()); err == nil {
		t.Fatalf("nil adapter should fail ping")
	}
}
