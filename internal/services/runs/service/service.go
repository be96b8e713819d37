// Package service records and lists analysis runs
package service

import (
	"context"
	"strings"

	perr "spoilerguard/internal/platform/errors"
	"spoilerguard/internal/services/runs/domain"
	"spoilerguard/internal/services/runs/repo"

	"github.com/google/uuid"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

// Service defines the runs service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the runs service
type Svc struct {
	Repo repo.Repo
}

// New constructs a runs service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("runs.Service requires a non nil Repo")
	}
	return &Svc{Repo: r}
}

// Record stores one run, assigning a run id when missing
func (s *Svc) Record(ctx context.Context, sum domain.RunSummary) error {
	if strings.TrimSpace(sum.EpisodeID) == "" {
		return perr.InvalidArgf("run summary missing episode id")
	}
	if sum.RunID == uuid.Nil {
		sum.RunID = uuid.New()
	}
	if sum.StopReason == "" {
		sum.StopReason = domain.StopCompleted
	}
	if err := s.Repo.Insert(ctx, []domain.RunSummary{sum}); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "record run for %s", sum.EpisodeID)
	}
	return nil
}

// ByEpisode returns the most recent runs for an episode, newest first
func (s *Svc) ByEpisode(ctx context.Context, in domain.ByEpisodeInput) ([]domain.RunSummary, error) {
	ep := strings.TrimSpace(in.EpisodeID)
	if ep == "" {
		return nil, perr.InvalidArgf("episodeId is required")
	}
	limit := in.Limit
	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	rows, err := s.Repo.ByEpisode(ctx, ep, limit)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "list runs for %s", ep)
	}
	if rows == nil {
		rows = []domain.RunSummary{}
	}
	return rows, nil
}
