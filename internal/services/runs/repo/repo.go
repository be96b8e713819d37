// Package repo persists analysis runs
package repo

import (
	"context"
	"sync"

	"spoilerguard/internal/services/runs/domain"
)

// Repo is the persistence surface for runs
type Repo interface {
	Insert(ctx context.Context, rows []domain.RunSummary) error
	ByEpisode(ctx context.Context, episodeID string, limit int) ([]domain.RunSummary, error)
}

// Noop drops every run
type Noop struct{}

// NewNoop returns a repo that stores nothing
func NewNoop() Repo { return Noop{} }

// Insert implements Repo
func (Noop) Insert(context.Context, []domain.RunSummary) error { return nil }

// ByEpisode implements Repo
func (Noop) ByEpisode(context.Context, string, int) ([]domain.RunSummary, error) { return nil, nil }

// Memory keeps the most recent runs in process
type Memory struct {
	mu   sync.Mutex
	max  int
	rows []domain.RunSummary
}

// NewMemory returns a repo capped at max rows, oldest evicted first
func NewMemory(max int) *Memory {
	if max <= 0 {
		max = 1000
	}
	return &Memory{max: max}
}

// Insert implements Repo
func (m *Memory) Insert(_ context.Context, rows []domain.RunSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, rows...)
	if over := len(m.rows) - m.max; over > 0 {
		m.rows = append(m.rows[:0:0], m.rows[over:]...)
	}
	return nil
}

// ByEpisode implements Repo, newest first
func (m *Memory) ByEpisode(_ context.Context, episodeID string, limit int) ([]domain.RunSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.RunSummary
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if m.rows[i].EpisodeID == episodeID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}
