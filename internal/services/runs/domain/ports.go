package domain

import "context"

// RecorderPort receives finished runs
type RecorderPort interface {
	Record(ctx context.Context, s RunSummary) error
}

// ReaderPort lists recorded runs
type ReaderPort interface {
	ByEpisode(ctx context.Context, in ByEpisodeInput) ([]RunSummary, error)
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	RecorderPort
	ReaderPort
}
