package module

import (
	"time"

	"spoilerguard/internal/adapters/classifier"
	"spoilerguard/internal/platform/config"
	spoilerrepo "spoilerguard/internal/services/spoiler/repo"
	spoilersvc "spoilerguard/internal/services/spoiler/service"
)

// Options controls the spoiler module
type Options struct {
	// Store selects the durable tier: memory, sqlite, pg or redis
	Store      string
	Service    spoilersvc.Config
	Classifier classifier.Options

	// RouteTimeout bounds one analyze request, several classifier calls fit inside
	RouteTimeout time.Duration
	// SweepEvery is the expiry sweep interval
	SweepEvery time.Duration
}

// FromConfig reads CORE_SPOILER_ and CORE_CLASSIFIER_ keys
func FromConfig(cfg config.Conf) Options {
	s := cfg.Prefix("CORE_SPOILER_")
	c := cfg.Prefix("CORE_CLASSIFIER_")
	d := spoilersvc.DefaultConfig()
	return Options{
		Store: s.MayEnum("STORE", spoilerrepo.KindSQLite,
			spoilerrepo.KindMemory, spoilerrepo.KindSQLite, spoilerrepo.KindPG, spoilerrepo.KindRedis),
		Service: spoilersvc.Config{
			BatchSize:              s.MayInt("BATCH_SIZE", d.BatchSize),
			MaxBatchesPerRun:       s.MayInt("MAX_BATCHES", d.MaxBatchesPerRun),
			BatchDelay:             s.MayDuration("BATCH_DELAY", d.BatchDelay),
			MaxConsecutiveFailures: s.MayInt("MAX_CONSECUTIVE_FAILURES", d.MaxConsecutiveFailures),
			Retention:              s.MayDuration("RETENTION", d.Retention),
		},
		Classifier: classifier.Options{
			BaseURL:     c.MayString("BASE_URL", ""),
			Model:       c.MayString("MODEL", ""),
			Temperature: c.MayFloat64("TEMPERATURE", 0),
			MaxTokens:   int64(c.MayInt("MAX_TOKENS", 0)),
			Timeout:     c.MayDuration("TIMEOUT", 60*time.Second),
			APIKey:      c.MayString("API_KEY", ""),
		},
		RouteTimeout: s.MayDuration("ROUTE_TIMEOUT", 5*time.Minute),
		SweepEvery:   s.MayDuration("SWEEP_EVERY", time.Hour),
	}
}
