// Package domain holds the analysis run log contracts
package domain

import (
	"time"

	"github.com/google/uuid"
)

// StopReason says why a run ended
type StopReason string

// stop reasons, persisted as text
const (
	StopCompleted           StopReason = "completed"
	StopQuota               StopReason = "quota"
	StopRateLimited         StopReason = "rate_limited"
	StopConsecutiveFailures StopReason = "consecutive_failures"
)

// RunSummary describes one non cached analysis run
type RunSummary struct {
	RunID         uuid.UUID  `json:"runId"`
	EpisodeID     string     `json:"episodeId"`
	StartedAt     time.Time  `json:"startedAt"`
	FinishedAt    time.Time  `json:"finishedAt"`
	TotalDanmaku  int        `json:"totalDanmaku"`
	TotalBatches  int        `json:"totalBatches"`
	BatchesOK     int        `json:"batchesOk"`
	BatchesFailed int        `json:"batchesFailed"`
	SpoilerCount  int        `json:"spoilerCount"`
	StopReason    StopReason `json:"stopReason"`
}

// Elapsed is the wall time of the run
func (r RunSummary) Elapsed() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// ByEpisodeInput selects recent runs for one episode
type ByEpisodeInput struct {
	EpisodeID string `json:"episodeId" validate:"required,max=200"`
	Limit     int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200"`
}
