package repo

import (
	"context"

	perr "spoilerguard/internal/platform/errors"
	"spoilerguard/internal/platform/store"
)

// Redis is a KVStore over plain redis strings
type Redis struct {
	r store.Redis
}

// NewRedis wraps the platform redis seam
func NewRedis(r store.Redis) *Redis { return &Redis{r: r} }

// All implements domain.KVStore
// keys that vanish between scan and get are skipped
func (s *Redis) All(ctx context.Context, prefix string) (map[string][]byte, error) {
	keys, err := s.r.Keys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		v, err := s.r.Get(ctx, k)
		if err != nil {
			if perr.IsCode(err, perr.ErrorCodeNotFound) {
				continue
			}
			return nil, err
		}
		out[k] = []byte(v)
	}
	return out, nil
}

// Set implements domain.KVStore, entries never expire on their own
func (s *Redis) Set(ctx context.Context, key string, value []byte) error {
	return s.r.Set(ctx, key, string(value), 0)
}

// Remove implements domain.KVStore
func (s *Redis) Remove(ctx context.Context, key string) error {
	return s.r.Del(ctx, key)
}
