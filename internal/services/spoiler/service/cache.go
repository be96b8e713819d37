package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"spoilerguard/internal/platform/logger"
	"spoilerguard/internal/services/spoiler/domain"
)

// MemoryTier is the process local copy of cached results
type MemoryTier struct {
	mu sync.RWMutex
	m  map[string]domain.AnalysisResult
}

// NewMemoryTier returns an empty tier
func NewMemoryTier() *MemoryTier {
	return &MemoryTier{m: map[string]domain.AnalysisResult{}}
}

// Get returns a copy of the entry for id
func (t *MemoryTier) Get(id string) (domain.AnalysisResult, bool) {
	t.mu.RLock()
	r, ok := t.m[id]
	t.mu.RUnlock()
	if !ok {
		return domain.AnalysisResult{}, false
	}
	return clone(r), true
}

// Put stores a copy of r under id
func (t *MemoryTier) Put(id string, r domain.AnalysisResult) {
	r = clone(r)
	t.mu.Lock()
	t.m[id] = r
	t.mu.Unlock()
}

// Delete removes id and reports whether it was present
func (t *MemoryTier) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.m[id]
	delete(t.m, id)
	return ok
}

// Len is the number of entries
func (t *MemoryTier) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.m)
}

// olderThan lists ids analyzed strictly before cutoff
func (t *MemoryTier) olderThan(cutoff int64) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var ids []string
	for id, r := range t.m {
		if r.AnalyzedAt < cutoff {
			ids = append(ids, id)
		}
	}
	return ids
}

// Cache keeps results in memory and writes them through to a durable KVStore
// reads are served from memory only
type Cache struct {
	mem       *MemoryTier
	kv        domain.KVStore
	retention time.Duration
	log       logger.Logger
}

// NewCache composes a memory tier over kv
func NewCache(kv domain.KVStore, retention time.Duration) *Cache {
	if kv == nil {
		panic("spoiler.Cache requires a non nil KVStore")
	}
	return &Cache{
		mem:       NewMemoryTier(),
		kv:        kv,
		retention: retention,
		log:       *logger.Named("spoiler.cache"),
	}
}

// Get returns the cached result for episodeID
func (c *Cache) Get(episodeID string) (domain.AnalysisResult, bool) {
	return c.mem.Get(episodeID)
}

// Put stores r in memory, then durably
// a durable failure is returned but the memory copy is kept
func (c *Cache) Put(ctx context.Context, episodeID string, r domain.AnalysisResult) error {
	c.mem.Put(episodeID, r)
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, CachePrefix+episodeID, b)
}

// Rehydrate loads every durable entry into memory and returns how many were loaded
// undecodable rows are logged and skipped
func (c *Cache) Rehydrate(ctx context.Context) (int, error) {
	rows, err := c.kv.All(ctx, CachePrefix)
	if err != nil {
		return 0, err
	}
	n := 0
	for k, v := range rows {
		id := strings.TrimPrefix(k, CachePrefix)
		var r domain.AnalysisResult
		if err := json.Unmarshal(v, &r); err != nil {
			c.log.Warn().Err(err).Str("key", k).Msg("skipping undecodable cache entry")
			continue
		}
		if r.EpisodeID == "" {
			r.EpisodeID = id
		}
		c.mem.Put(id, r)
		n++
	}
	return n, nil
}

// SweepExpired removes entries older than the retention window from both tiers
// it returns the number of distinct episodes removed
func (c *Cache) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-c.retention).UnixMilli()

	expired := map[string]struct{}{}
	for _, id := range c.mem.olderThan(cutoff) {
		expired[id] = struct{}{}
	}

	// durable rows that never made it into memory
	rows, scanErr := c.kv.All(ctx, CachePrefix)
	for k, v := range rows {
		var r domain.AnalysisResult
		if err := json.Unmarshal(v, &r); err != nil {
			continue
		}
		if r.AnalyzedAt < cutoff {
			expired[strings.TrimPrefix(k, CachePrefix)] = struct{}{}
		}
	}

	var errs []error
	if scanErr != nil {
		errs = append(errs, scanErr)
	}
	for id := range expired {
		c.mem.Delete(id)
		if err := c.kv.Remove(ctx, CachePrefix+id); err != nil {
			errs = append(errs, err)
		}
	}
	return len(expired), errors.Join(errs...)
}

// Invalidate drops one episode from both tiers
// removed reports whether the episode was cached in memory
func (c *Cache) Invalidate(ctx context.Context, episodeID string) (bool, error) {
	removed := c.mem.Delete(episodeID)
	return removed, c.kv.Remove(ctx, CachePrefix+episodeID)
}

// Size is the number of entries in memory
func (c *Cache) Size() int { return c.mem.Len() }

func clone(r domain.AnalysisResult) domain.AnalysisResult {
	r.SpoilerIDs = append([]string(nil), r.SpoilerIDs...)
	if r.SpoilerIDs == nil {
		r.SpoilerIDs = []string{}
	}
	return r
}
