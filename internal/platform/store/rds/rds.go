// Package rds provides a redis client for small key value workloads
package rds

import (
	"context"
	"errors"
	"strings"
	"time"

	perr "spoilerguard/internal/platform/errors"

	"github.com/redis/go-redis/v9"
)

// Config configures the redis client
type Config struct {
	URL      string
	PoolSize int
}

// RDS wraps a go-redis client
type RDS struct {
	c *redis.Client
}

// scanCount is the COUNT hint per SCAN page
const scanCount = 200

// Open parses the URL, connects and pings
func Open(ctx context.Context, cfg Config) (*RDS, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("rds: empty url")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	r := New(redis.NewClient(opts))
	if err := r.Ping(ctx); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

// New wraps an existing client
func New(c *redis.Client) *RDS { return &RDS{c: c} }

// Get returns the value at key or perr.ErrNotFound
func (r *RDS) Get(ctx context.Context, key string) (string, error) {
	v, err := r.c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", perr.ErrNotFound
	}
	return v, err
}

// Set stores value at key, ttl <= 0 means no expiry
func (r *RDS) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.c.Set(ctx, key, value, ttl).Err()
}

// Del removes keys, missing keys are ignored
func (r *RDS) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.c.Del(ctx, keys...).Err()
}

// Keys walks the keyspace with SCAN and returns every key starting with prefix
func (r *RDS) Keys(ctx context.Context, prefix string) ([]string, error) {
	var (
		out    []string
		cursor uint64
	)
	match := escapeGlob(prefix) + "*"
	for {
		keys, next, err := r.c.Scan(ctx, cursor, match, scanCount).Result()
		if err != nil {
			return nil, err
		}
		out = append(out, keys...)
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}

// Ping verifies the connection
func (r *RDS) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

// Close closes the pool
func (r *RDS) Close() error { return r.c.Close() }

// escapeGlob quotes glob metacharacters so prefix matches literally
func escapeGlob(s string) string {
	if !strings.ContainsAny(s, `*?[]\`) {
		return s
	}
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
