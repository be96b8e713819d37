// Package service runs spoiler analysis over batched classifier calls
// and keeps per episode results in a two tier cache
package service

import (
	"context"
	"strings"
	"time"

	"spoilerguard/internal/core/batch"
	"spoilerguard/internal/core/reply"
	perr "spoilerguard/internal/platform/errors"
	"spoilerguard/internal/platform/logger"
	runsdomain "spoilerguard/internal/services/runs/domain"
	"spoilerguard/internal/services/spoiler/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Service defines the spoiler service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the spoiler service
type Svc struct {
	cfg   Config
	cache *Cache
	kv    domain.KVStore
	cls   domain.Classifier
	runs  domain.RunRecorder
	log   logger.Logger

	group singleflight.Group

	now   func() time.Time
	sleep func(time.Duration)
}

// New constructs a spoiler service, runs may be nil
func New(cfg Config, kv domain.KVStore, cls domain.Classifier, runs domain.RunRecorder) *Svc {
	if kv == nil {
		panic("spoiler.Service requires a non nil KVStore")
	}
	if cls == nil {
		panic("spoiler.Service requires a non nil Classifier")
	}
	cfg = cfg.withDefaults()
	return &Svc{
		cfg:   cfg,
		cache: NewCache(kv, cfg.Retention),
		kv:    kv,
		cls:   cls,
		runs:  runs,
		log:   *logger.Named("spoiler"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Cache exposes the result cache for boot and maintenance jobs
func (s *Svc) Cache() *Cache { return s.cache }

// Analyze returns the spoiler ids for an episode
// a cached result is returned without calling the classifier unless Reanalyze is set
func (s *Svc) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.AnalysisResult, error) {
	ep := strings.TrimSpace(in.EpisodeID)
	if ep == "" {
		return domain.AnalysisResult{}, perr.WithField(perr.InvalidArgf("episodeId is required"), "episodeId")
	}

	if !in.Reanalyze {
		if r, ok := s.cache.Get(ep); ok {
			return r, nil
		}
	}

	// checked before any invalidation so a failed reanalyze keeps the old result
	if !s.cls.HasAPIKey() {
		return domain.AnalysisResult{}, perr.FailedPreconditionf("classifier api key is not configured")
	}

	// a started run outlives its caller, the classifier timeout bounds each call
	runCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(ep, func() (any, error) {
		if in.Reanalyze {
			if _, err := s.cache.Invalidate(runCtx, ep); err != nil {
				logger.C(ctx).Warn().Err(err).Str("episode_id", ep).Msg("durable invalidate failed")
			}
		} else if r, ok := s.cache.Get(ep); ok {
			return r, nil
		}
		return s.run(runCtx, ep, in), nil
	})
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	if shared {
		logger.C(ctx).Debug().Str("episode_id", ep).Msg("joined in flight analysis")
	}
	return clone(v.(domain.AnalysisResult)), nil
}

// run classifies windows in order until the input, the quota or the failure budget runs out
func (s *Svc) run(ctx context.Context, ep string, in domain.AnalyzeInput) domain.AnalysisResult {
	log := logger.C(ctx).With().Str("episode_id", ep).Logger()
	started := s.now()

	wins := batch.Split(in.Danmaku, s.cfg.BatchSize)
	flagged := make([]string, 0)
	seen := make(map[string]struct{})

	var ok, failed, consecutive int
	reason := runsdomain.StopCompleted

loop:
	for i, w := range wins {
		if ok >= s.cfg.MaxBatchesPerRun {
			reason = runsdomain.StopQuota
			break
		}
		blog := log.With().Int("batch", i+1).Int("total_batches", len(wins)).Logger()

		text, err := s.cls.Classify(ctx, batch.Format(w.Items, w.Start), in.AnimeTitle, in.EpisodeTitle)
		if err != nil {
			failed++
			consecutive++
			blog.Warn().Err(err).Int("consecutive", consecutive).Msg("batch failed")
			switch {
			case perr.IsCode(err, perr.ErrorCodeTooManyRequests):
				reason = runsdomain.StopRateLimited
				break loop
			case consecutive >= s.cfg.MaxConsecutiveFailures:
				reason = runsdomain.StopConsecutiveFailures
				break loop
			}
			continue
		}

		ok++
		consecutive = 0
		hits := 0
		for _, idx := range reply.Parse(text) {
			rec, found := w.Lookup(idx)
			if !found || rec.ID == "" {
				continue
			}
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
			flagged = append(flagged, rec.ID)
			hits++
		}
		blog.Debug().Int("flagged", hits).Msg("batch classified")

		if ok < s.cfg.MaxBatchesPerRun && i < len(wins)-1 {
			s.sleep(s.cfg.BatchDelay)
		}
	}

	res := domain.AnalysisResult{
		EpisodeID:    ep,
		SpoilerIDs:   flagged,
		AnalyzedAt:   s.now().UnixMilli(),
		TotalDanmaku: len(in.Danmaku),
		SpoilerCount: len(flagged),
	}

	if err := s.cache.Put(ctx, ep, res); err != nil {
		log.Warn().Err(err).Msg("durable cache write failed")
	}

	sum := runsdomain.RunSummary{
		RunID:         uuid.New(),
		EpisodeID:     ep,
		StartedAt:     started,
		FinishedAt:    s.now(),
		TotalDanmaku:  len(in.Danmaku),
		TotalBatches:  len(wins),
		BatchesOK:     ok,
		BatchesFailed: failed,
		SpoilerCount:  len(flagged),
		StopReason:    reason,
	}
	log.Info().
		Str("stop_reason", string(reason)).
		Int("batches_ok", ok).
		Int("batches_failed", failed).
		Int("total_batches", len(wins)).
		Int("spoilers", len(flagged)).
		Dur("elapsed", sum.Elapsed()).
		Msg("analysis finished")
	if s.runs != nil {
		if err := s.runs.Record(ctx, sum); err != nil {
			log.Warn().Err(err).Msg("run summary not recorded")
		}
	}
	return res
}

// UpdateAPIKey swaps the classifier credential and persists it
func (s *Svc) UpdateAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return perr.WithField(perr.InvalidArgf("apiKey is required"), "apiKey")
	}
	s.cls.SetAPIKey(key)
	if err := s.kv.Set(ctx, APIKeyKey, []byte(key)); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "persist api key")
	}
	return nil
}

// LoadAPIKey restores a persisted credential unless the classifier already has one
func (s *Svc) LoadAPIKey(ctx context.Context) (bool, error) {
	if s.cls.HasAPIKey() {
		return true, nil
	}
	rows, err := s.kv.All(ctx, APIKeyKey)
	if err != nil {
		return false, err
	}
	if v := strings.TrimSpace(string(rows[APIKeyKey])); v != "" {
		s.cls.SetAPIKey(v)
		return true, nil
	}
	return false, nil
}

// Status reports cache size and credential presence
func (s *Svc) Status(context.Context) (domain.Status, error) {
	return domain.Status{CacheSize: s.cache.Size(), HasAPIKey: s.cls.HasAPIKey()}, nil
}

// Invalidate drops one episode from the cache
func (s *Svc) Invalidate(ctx context.Context, episodeID string) (bool, error) {
	ep := strings.TrimSpace(episodeID)
	if ep == "" {
		return false, perr.WithField(perr.InvalidArgf("episodeId is required"), "episodeId")
	}
	removed, err := s.cache.Invalidate(ctx, ep)
	if err != nil {
		return removed, perr.Wrapf(err, perr.ErrorCodeDB, "invalidate %s", ep)
	}
	return removed, nil
}

// Rehydrate loads durable results into memory
func (s *Svc) Rehydrate(ctx context.Context) (int, error) { return s.cache.Rehydrate(ctx) }

// SweepExpired drops results past retention from both tiers
func (s *Svc) SweepExpired(ctx context.Context) (int, error) {
	return s.cache.SweepExpired(ctx, s.now())
}
