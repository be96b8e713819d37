package module

import (
	"context"

	"spoilerguard/internal/services/runs/domain"
	runssvc "spoilerguard/internal/services/runs/service"
)

// Ports is the port set other modules pull from runs
type Ports struct {
	Recorder domain.RecorderPort
	Reader   domain.ReaderPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptRunsPort struct{ svc runssvc.Service }

// Record stores a finished run
func (a adaptRunsPort) Record(ctx context.Context, s domain.RunSummary) error {
	return a.svc.Record(ctx, s)
}

// ByEpisode lists recent runs for an episode
func (a adaptRunsPort) ByEpisode(ctx context.Context, in domain.ByEpisodeInput) ([]domain.RunSummary, error) {
	return a.svc.ByEpisode(ctx, in)
}
