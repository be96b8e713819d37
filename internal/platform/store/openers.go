package store

import (
	"context"
	"fmt"
	"time"

	chx "spoilerguard/internal/platform/store/ch"
	"spoilerguard/internal/platform/store/lite"
	"spoilerguard/internal/platform/store/pg"
	"spoilerguard/internal/platform/store/rds"
)

// replaced in tests
var (
	pgOpen   = pg.Open
	chOpen   = chx.Open
	rdsOpen  = rds.Open
	liteOpen = lite.Open
)

// openPG opens the pool and publishes the adapter once the server answers
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pgOpen(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, err
	}

	retries := cfg.PG.ConnectRetries
	if retries <= 0 {
		retries = 6
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	if err := p.WaitReady(ctx, retries, pingTimeout); err != nil {
		p.Close()
		return nil, err
	}
	s.Log.Debug().Str("backend", "pg").Int("retries", retries).Msg("store backend ready")
	return newPGAdapter(p), nil
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := chOpen(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientName: cfg.AppName,
		ClientTag:  cfg.CH.Tag,
	})
	if err != nil {
		return nil, err
	}
	s.Log.Debug().Str("backend", "ch").Msg("store backend ready")
	return chSeam{c}, nil
}

func openLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	l, err := liteOpen(ctx, lite.Config{Path: cfg.Lite.Path})
	if err != nil {
		return nil, fmt.Errorf("sqlite open %q: %w", cfg.Lite.Path, err)
	}
	s.Log.Debug().Str("backend", "sqlite").Str("path", cfg.Lite.Path).Msg("store backend ready")
	return newLiteAdapter(l.DB), nil
}

func openRDS(ctx context.Context, cfg Config, s *Store) (Redis, error) {
	r, err := rdsOpen(ctx, rds.Config{URL: cfg.RDS.URL, PoolSize: cfg.RDS.PoolSize})
	if err != nil {
		return nil, fmt.Errorf("redis open: %w", err)
	}
	s.Log.Debug().Str("backend", "redis").Msg("store backend ready")
	return r, nil
}
