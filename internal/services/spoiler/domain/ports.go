package domain

import (
	"context"

	runsdomain "spoilerguard/internal/services/runs/domain"
)

// KVStore is the durable key value tier
// values are opaque bytes, All returns every key starting with prefix
type KVStore interface {
	All(ctx context.Context, prefix string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Classifier sends one formatted batch to the model and returns its raw reply
type Classifier interface {
	Classify(ctx context.Context, batchText, title, episodeTitle string) (string, error)
	SetAPIKey(key string)
	HasAPIKey() bool
}

// RunRecorder receives one summary per non cached run
type RunRecorder = runsdomain.RecorderPort

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Analyze(ctx context.Context, in AnalyzeInput) (AnalysisResult, error)
	UpdateAPIKey(ctx context.Context, key string) error
	Status(ctx context.Context) (Status, error)
	Invalidate(ctx context.Context, episodeID string) (bool, error)
}

// MaintenancePort is used by boot and scheduled jobs
type MaintenancePort interface {
	Rehydrate(ctx context.Context) (int, error)
	SweepExpired(ctx context.Context) (int, error)
	LoadAPIKey(ctx context.Context) (bool, error)
}
