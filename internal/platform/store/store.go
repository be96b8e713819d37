// Package store opens the optional backends a process is configured for
// and hands them out as narrow seams
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spoilerguard/internal/platform/logger"
)

// Config lists the backends to open, a disabled one stays nil on the Store
type Config struct {
	// AppName is reported to postgres and clickhouse as the client name
	AppName string

	PG   PGConfig
	CH   CHConfig
	Lite LiteConfig
	RDS  RedisConfig
}

// PGConfig configures the postgres pool
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectRetries and PingTimeout bound the wait for a booting server, 6 and 5s when zero
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures the clickhouse connection
type CHConfig struct {
	Enabled bool
	URL     string
	Tag     string
}

// LiteConfig configures the embedded sqlite file
type LiteConfig struct {
	Enabled bool
	Path    string
}

// RedisConfig configures the redis client
type RedisConfig struct {
	Enabled  bool
	URL      string
	PoolSize int
}

// Store holds whichever backends were opened, the zero value has none
type Store struct {
	Log logger.Logger

	PG   TxRunner
	CH   Clickhouse
	Lite TxRunner
	RDS  Redis
}

// Option adjusts a Store before backends open
type Option func(*Store)

// WithLogger sets the logger backends report through
func WithLogger(log logger.Logger) Option { return func(s *Store) { s.Log = log } }

// Open connects every enabled backend in cfg
// on failure the backends already open are closed again
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}
	if err := s.open(ctx, cfg); err != nil {
		_ = s.Close(ctx)
		return nil, err
	}
	return s, nil
}

func (s *Store) open(ctx context.Context, cfg Config) (err error) {
	if cfg.PG.Enabled {
		if s.PG, err = openPG(ctx, cfg, s); err != nil {
			return err
		}
	}
	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg, s); err != nil {
			return err
		}
	}
	if cfg.Lite.Enabled {
		if s.Lite, err = openLite(ctx, cfg, s); err != nil {
			return err
		}
	}
	if cfg.RDS.Enabled {
		if s.RDS, err = openRDS(ctx, cfg, s); err != nil {
			return err
		}
	}
	return nil
}

type namedSeam struct {
	name string
	seam any
}

// seams lists backends in close order, readers before the pool they may share
func (s *Store) seams() []namedSeam {
	return []namedSeam{{"ch", s.CH}, {"redis", s.RDS}, {"sqlite", s.Lite}, {"pg", s.PG}}
}

// Guard pings every open backend that can be pinged and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for _, n := range s.seams() {
		p, ok := n.seam.(Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every open backend and joins the failures
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, n := range s.seams() {
		if c, ok := n.seam.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", n.name, err))
			}
		}
	}
	return errors.Join(errs...)
}
