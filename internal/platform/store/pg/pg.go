// Package pg opens a pgx pool with optional query tracing
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	AppName  string
	MaxConns int32
	SlowMs   int
}

// PG is a postgres pool plus the tracer its adapter reports to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

// seams for tests
var (
	newPool  = pgxpool.NewWithConfig
	pingPool = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
	backoff0 = 150 * time.Millisecond
)

const backoffMax = 2 * time.Second

// Open parses cfg and builds the pool, no connection is made yet
func Open(ctx context.Context, cfg Config, tracer QueryTracer) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// WaitReady pings the pool until it answers, doubling the pause between attempts
// ping bypasses the tracer so boot does not log a query per attempt
func (p *PG) WaitReady(ctx context.Context, attempts int, perPing time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	var last error
	pause := backoff0
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, perPing)
		last = pingPool(pctx, p.Pool)
		cancel()
		if last == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
		}
		pause = min(pause*2, backoffMax)
	}
	return fmt.Errorf("pg: not ready after %d attempts: %w", attempts, last)
}

// Close closes the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
