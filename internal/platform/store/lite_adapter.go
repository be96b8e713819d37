package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// liteAdapter wraps *sql.DB for sqlite and implements RowQuerier + TxRunner
type liteAdapter struct {
	db *sql.DB
}

func newLiteAdapter(db *sql.DB) *liteAdapter { return &liteAdapter{db: db} }

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.db.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.db.Close() }

func (a *liteAdapter) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	return execSQL(ctx, a.db, query, args...)
}

func (a *liteAdapter) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return querySQL(ctx, a.db, query, args...)
}

func (a *liteAdapter) QueryRow(ctx context.Context, query string, args ...any) Row {
	return a.db.QueryRowContext(ctx, query, args...)
}

func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlTxQuerier{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// sqlExecer is the shared surface of *sql.DB and *sql.Tx
type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func execSQL(ctx context.Context, e sqlExecer, query string, args ...any) (CommandTag, error) {
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	return sqlTag{n: n}, nil
}

func querySQL(ctx context.Context, e sqlExecer, query string, args ...any) (Rows, error) {
	rs, err := e.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{r: rs}, nil
}

type sqlTxQuerier struct{ tx *sql.Tx }

func (t sqlTxQuerier) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	return execSQL(ctx, t.tx, query, args...)
}

func (t sqlTxQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return querySQL(ctx, t.tx, query, args...)
}

func (t sqlTxQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

// sqlRows adapts *sql.Rows to Rows
type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }
func (x sqlRows) Columns() []string {
	cols, _ := x.r.Columns()
	return cols
}

// sqlTag reports rows affected the way pgconn.CommandTag does
type sqlTag struct{ n int64 }

func (t sqlTag) String() string      { return fmt.Sprintf("OK %d", t.n) }
func (t sqlTag) RowsAffected() int64 { return t.n }
