package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestLite(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, Config{Lite: LiteConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "t.db")}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })
	if _, err := s.Lite.Exec(ctx, `CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	return s
}

func TestLite_ExecAndPairs(t *testing.T) {
	t.Parallel()

	s := openTestLite(t)
	ctx := context.Background()

	for _, kv := range [][2]string{{"cache_a", "1"}, {"cache_b", "2"}, {"setting_x", "3"}} {
		tag, err := s.Lite.Exec(ctx, `INSERT INTO kv (k, v) VALUES (?, ?)`, kv[0], kv[1])
		if err != nil || tag.RowsAffected() != 1 {
			t.Fatalf("insert %s: tag=%v err=%v", kv[0], tag, err)
		}
	}

	got, err := Pairs(ctx, s.Lite, `SELECT k, v FROM kv WHERE substr(k, 1, 6) = ?`, "cache_")
	if err != nil || len(got) != 2 || got["cache_a"] != "1" || got["cache_b"] != "2" {
		t.Fatalf("Pairs = %v %v", got, err)
	}

	var n int
	if err := s.Lite.QueryRow(ctx, `SELECT COUNT(*) FROM kv`).Scan(&n); err != nil || n != 3 {
		t.Fatalf("count = %d %v", n, err)
	}
}

func TestLite_TxRollsBackOnError(t *testing.T) {
	t.Parallel()

	s := openTestLite(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Lite.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `INSERT INTO kv (k, v) VALUES ('x', 'y')`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Tx err = %v, want boom", err)
	}
	var n int
	_ = s.Lite.QueryRow(ctx, `SELECT COUNT(*) FROM kv`).Scan(&n)
	if n != 0 {
		t.Fatalf("rollback left %d rows", n)
	}

	if err := s.Lite.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, `INSERT INTO kv (k, v) VALUES ('x', 'y')`)
		return err
	}); err != nil {
		t.Fatalf("Tx commit: %v", err)
	}
	_ = s.Lite.QueryRow(ctx, `SELECT COUNT(*) FROM kv`).Scan(&n)
	if n != 1 {
		t.Fatalf("commit rows = %d, want 1", n)
	}
}

func TestLite_GuardPings(t *testing.T) {
	t.Parallel()

	s := openTestLite(t)
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard: %v", err)
	}
}
