// Package ch provides a clickhouse client
package ch

import (
	"context"
	"errors"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
type Config struct {
	URL string

	// ClientName and ClientTag are reported to the server in system.query_log
	ClientName string
	ClientTag  string
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// batch is the slice of driver.Batch that Insert needs
type batch interface {
	Append(v ...any) error
	Send() error
	Abort() error
}

// conn is the slice of driver.Conn that CH needs
type conn interface {
	prepare(ctx context.Context, query string) (batch, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Exec(ctx context.Context, query string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

// CH is a clickhouse client over the native protocol
type CH struct {
	c conn
}

var openConn = func(opts *clickhouse.Options) (driver.Conn, error) { return clickhouse.Open(opts) }

// Open parses the DSN, connects and pings
func Open(ctx context.Context, cfg Config) (*CH, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("ch: empty url")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.ClientName != "" {
		opts.ClientInfo = BuildClientInfo(cfg.ClientName, cfg.ClientTag)
	}
	dc, err := openConn(opts)
	if err != nil {
		return nil, err
	}
	c := &CH{c: driverConn{dc}}
	if err := c.Ping(ctx); err != nil {
		_ = dc.Close()
		return nil, err
	}
	return c, nil
}

// Insert appends rows to table in one batch
// each row must list values in the table's column order
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	if strings.TrimSpace(table) == "" {
		return errors.New("ch: empty table")
	}
	b, err := c.c.prepare(ctx, "INSERT INTO "+table)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := b.Append(r...); err != nil {
			_ = b.Abort()
			return err
		}
	}
	return b.Send()
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return c.c.Query(ctx, sql, args...)
}

// Exec runs a statement without results, typically DDL
func (c *CH) Exec(ctx context.Context, sql string, args ...any) error {
	return c.c.Exec(ctx, sql, args...)
}

// Ping verifies the connection
func (c *CH) Ping(ctx context.Context) error { return c.c.Ping(ctx) }

// Close closes resources
func (c *CH) Close() error { return c.c.Close() }

// driverConn adapts driver.Conn to conn
type driverConn struct{ driver.Conn }

func (d driverConn) prepare(ctx context.Context, query string) (batch, error) {
	return d.Conn.PrepareBatch(ctx, query)
}

func (d driverConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return d.Conn.Query(ctx, query, args...)
}
