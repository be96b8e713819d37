package service

import (
	"time"

	"spoilerguard/internal/core/batch"
)

// durable key layout
const (
	CachePrefix = "cache_"
	APIKeyKey   = "setting_apiKey"
)

// Config tunes the analysis loop and cache lifetime
type Config struct {
	// BatchSize is the number of comments per classifier call
	BatchSize int
	// MaxBatchesPerRun caps successful classifier calls per run
	MaxBatchesPerRun int
	// BatchDelay is the pause after a successful batch when more work remains
	BatchDelay time.Duration
	// MaxConsecutiveFailures stops a run after this many failures in a row
	MaxConsecutiveFailures int
	// Retention is how long a cached result stays valid
	Retention time.Duration
}

// DefaultConfig returns the production tuning
func DefaultConfig() Config {
	return Config{
		BatchSize:              batch.DefaultSize,
		MaxBatchesPerRun:       3,
		BatchDelay:             time.Second,
		MaxConsecutiveFailures: 3,
		Retention:              7 * 24 * time.Hour,
	}
}

// withDefaults fills non positive fields from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.MaxBatchesPerRun <= 0 {
		c.MaxBatchesPerRun = d.MaxBatchesPerRun
	}
	if c.BatchDelay < 0 {
		c.BatchDelay = d.BatchDelay
	}
	if c.MaxConsecutiveFailures <= 0 {
		c.MaxConsecutiveFailures = d.MaxConsecutiveFailures
	}
	if c.Retention <= 0 {
		c.Retention = d.Retention
	}
	return c
}
