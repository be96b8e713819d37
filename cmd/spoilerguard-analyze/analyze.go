package main

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"spoilerguard/internal/adapters/danmaku"
	perr "spoilerguard/internal/platform/errors"
	"spoilerguard/internal/platform/logger"
	"spoilerguard/internal/services/spoiler/domain"
)

type analyzeFlags struct {
	CID          int64
	Episode      string
	Title        string
	EpisodeTitle string
	Reanalyze    bool
	BaseURL      string
}

// fetcher is the slice of danmaku.Client the command needs
type fetcher interface {
	Fetch(ctx context.Context, cid int64) ([]danmaku.Comment, error)
}

// analyze fetches comments for f.CID, classifies them and writes the result as json
func analyze(ctx context.Context, f analyzeFlags, src fetcher, svc domain.ServicePort, out io.Writer) error {
	if f.CID <= 0 {
		return perr.InvalidArgf("--cid must be positive")
	}
	episode := strings.TrimSpace(f.Episode)
	if episode == "" {
		episode = strconv.FormatInt(f.CID, 10)
	}

	comments, err := src.Fetch(ctx, f.CID)
	if err != nil {
		return err
	}
	logger.C(ctx).Info().Int64("cid", f.CID).Int("comments", len(comments)).Msg("danmaku fetched")

	res, err := svc.Analyze(ctx, domain.AnalyzeInput{
		EpisodeID:    episode,
		Danmaku:      toRecords(comments),
		AnimeTitle:   f.Title,
		EpisodeTitle: f.EpisodeTitle,
		Reanalyze:    f.Reanalyze,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func toRecords(in []danmaku.Comment) []domain.CommentRecord {
	out := make([]domain.CommentRecord, 0, len(in))
	for _, c := range in {
		out = append(out, domain.CommentRecord{
			ID:        c.ID,
			Content:   c.Content,
			Progress:  domain.Millis(c.ProgressMs),
			Mode:      c.Mode,
			FontSize:  c.FontSize,
			Color:     c.Color,
			Timestamp: c.Timestamp,
			Pool:      c.Pool,
			UserID:    c.UserHash,
		})
	}
	return out
}
