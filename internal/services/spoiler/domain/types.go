// Package domain holds spoiler analysis contracts
package domain

import (
	"math"
	"strconv"
	"strings"

	perr "spoilerguard/internal/platform/errors"
)

// Millis is a playback offset in whole milliseconds
// it decodes from integer or fractional JSON numbers and numeric strings, flooring fractions
type Millis int64

// UnmarshalJSON implements json.Unmarshaler
func (m *Millis) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*m = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		u, err := strconv.Unquote(s)
		if err != nil {
			return perr.JSONErrf("progress: %v", err)
		}
		s = strings.TrimSpace(u)
		if s == "" {
			*m = 0
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return perr.JSONErrf("progress %q is not a number", s)
	}
	f = math.Floor(f)
	switch {
	case f >= math.MaxInt64:
		*m = Millis(math.MaxInt64)
	case f <= math.MinInt64:
		*m = Millis(math.MinInt64)
	default:
		*m = Millis(f)
	}
	return nil
}

// CommentRecord is one danmaku comment as sent by the extension
// only ID, Content and Progress are interpreted
type CommentRecord struct {
	ID        string `json:"id"                  validate:"required,max=128"`
	Content   string `json:"content"`
	Progress  Millis `json:"progress"`
	Mode      int    `json:"mode,omitempty"`
	FontSize  int    `json:"fontsize,omitempty"`
	Color     int    `json:"color,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Pool      int    `json:"pool,omitempty"`
	UserID    string `json:"userid,omitempty"`
}

// Text returns the comment body
func (c CommentRecord) Text() string { return c.Content }

// OffsetMs returns the playback offset
func (c CommentRecord) OffsetMs() int64 { return int64(c.Progress) }

// AnalysisResult is the canonical outcome for one episode
// the JSON form is both the wire and the persisted form
type AnalysisResult struct {
	EpisodeID    string   `json:"episodeId"`
	SpoilerIDs   []string `json:"spoilerIds"`
	AnalyzedAt   int64    `json:"analyzedAt"`
	TotalDanmaku int      `json:"totalDanmaku"`
	SpoilerCount int      `json:"spoilerCount"`
}

// AnalyzeInput asks for the spoiler ids of one episode
type AnalyzeInput struct {
	EpisodeID    string          `json:"episodeId"    validate:"required,max=200"`
	Danmaku      []CommentRecord `json:"danmakuList"  validate:"dive"`
	AnimeTitle   string          `json:"animeTitle"   validate:"max=500"`
	EpisodeTitle string          `json:"episodeTitle" validate:"max=500"`
	Reanalyze    bool            `json:"reanalyze,omitempty"`
}

// APIKeyInput replaces the classifier credential
type APIKeyInput struct {
	APIKey string `json:"apiKey" validate:"required,max=512"`
}

// Status reports cache size and credential presence
type Status struct {
	CacheSize int  `json:"cacheSize"`
	HasAPIKey bool `json:"hasApiKey"`
}

// InvalidateResult reports whether a cached entry was removed
type InvalidateResult struct {
	Removed bool `json:"removed"`
}
