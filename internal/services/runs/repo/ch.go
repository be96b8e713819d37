package repo

import (
	"context"
	"time"

	"spoilerguard/internal/platform/store"
	"spoilerguard/internal/services/runs/domain"

	"github.com/google/uuid"
)

// Table is the clickhouse table holding runs
const Table = "spoiler_runs"

const ddl = `
CREATE TABLE IF NOT EXISTS spoiler_runs (
	run_id         UUID,
	episode_id     String,
	started_at     DateTime64(3, 'UTC'),
	finished_at    DateTime64(3, 'UTC'),
	total_danmaku  UInt32,
	total_batches  UInt32,
	batches_ok     UInt32,
	batches_failed UInt32,
	spoiler_count  UInt32,
	stop_reason    LowCardinality(String)
)
ENGINE = MergeTree
ORDER BY (episode_id, started_at)
TTL toDateTime(started_at) + INTERVAL 90 DAY
`

type chRepo struct {
	c store.Clickhouse
}

// NewCH returns a clickhouse backed repo
func NewCH(c store.Clickhouse) Repo { return &chRepo{c: c} }

// EnsureSchema creates the runs table when missing
func EnsureSchema(ctx context.Context, c store.Clickhouse) error {
	return c.Exec(ctx, ddl)
}

func (r *chRepo) Insert(ctx context.Context, rows []domain.RunSummary) error {
	data := make([][]any, 0, len(rows))
	for _, s := range rows {
		data = append(data, []any{
			s.RunID,
			s.EpisodeID,
			s.StartedAt.UTC(),
			s.FinishedAt.UTC(),
			uint32(s.TotalDanmaku),
			uint32(s.TotalBatches),
			uint32(s.BatchesOK),
			uint32(s.BatchesFailed),
			uint32(s.SpoilerCount),
			string(s.StopReason),
		})
	}
	return r.c.Insert(ctx, Table, data)
}

func (r *chRepo) ByEpisode(ctx context.Context, episodeID string, limit int) ([]domain.RunSummary, error) {
	const sql = `
SELECT run_id, episode_id, started_at, finished_at,
       total_danmaku, total_batches, batches_ok, batches_failed, spoiler_count, stop_reason
FROM spoiler_runs
WHERE episode_id = ?
ORDER BY started_at DESC
LIMIT ?
`
	rows, err := r.c.Query(ctx, sql, episodeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RunSummary
	for rows.Next() {
		var (
			id                          uuid.UUID
			ep, reason                  string
			started, finished           time.Time
			total, batches, ok, fail, n uint32
		)
		if err := rows.Scan(&id, &ep, &started, &finished, &total, &batches, &ok, &fail, &n, &reason); err != nil {
			return nil, err
		}
		out = append(out, domain.RunSummary{
			RunID:         id,
			EpisodeID:     ep,
			StartedAt:     started,
			FinishedAt:    finished,
			TotalDanmaku:  int(total),
			TotalBatches:  int(batches),
			BatchesOK:     int(ok),
			BatchesFailed: int(fail),
			SpoilerCount:  int(n),
			StopReason:    domain.StopReason(reason),
		})
	}
	return out, rows.Err()
}
