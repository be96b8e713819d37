package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, ln := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if ln == "" {
			continue
		}
		m := map[string]any{}
		if err := json.Unmarshal([]byte(ln), &m); err != nil {
			t.Fatalf("line %q: %v", ln, err)
		}
		out = append(out, m)
	}
	return out
}

func TestBuild_LevelsAndTags(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "WARN", Format: "json", Service: "spoilerguard", Writer: &buf, ExtraTags: map[string]string{"bin": "api"}})

	l.Info().Msg("dropped")
	l.Warn().Str("episode", "ep1").Msg("kept")

	got := lines(t, &buf)
	if len(got) != 1 {
		t.Fatalf("lines = %d, want 1", len(got))
	}
	if got[0]["message"] != "kept" || got[0]["service"] != "spoilerguard" || got[0]["bin"] != "api" || got[0]["episode"] != "ep1" {
		t.Fatalf("line = %v", got[0])
	}
}

func TestBuild_BadLevelFallsBackToInfo(t *testing.T) {
	for _, lvl := range []string{"", "loud"} {
		l := build(Options{Level: lvl, Format: "json", Writer: &bytes.Buffer{}})
		if l.GetLevel() != zerolog.InfoLevel {
			t.Fatalf("level(%q) = %s", lvl, l.GetLevel())
		}
	}
}

func TestBuild_Console(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "debug", Format: "console", Writer: &buf})
	l.Debug().Msg("sweep done")
	if !strings.Contains(buf.String(), "sweep done") {
		t.Fatalf("console output = %q", buf.String())
	}
}

func TestC_TagsFromContext(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-1", "")
	ctx = WithRequest(ctx, "", "ext-9")

	var buf bytes.Buffer
	l := C(ctx).Output(&buf)
	l.Error().Msg("analyze failed")

	got := lines(t, &buf)
	if len(got) != 1 || got[0]["request_id"] != "req-1" || got[0]["client_id"] != "ext-9" {
		t.Fatalf("lines = %v", got)
	}

	if C(context.Background()) != Get() {
		t.Fatalf("untagged ctx should return the root logger")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "4")

	o := FromEnv()
	if o.Level != "debug" || o.Format != "json" || !o.Caller || o.SampleN != 4 || o.Service != "spoilerguard" {
		t.Fatalf("opts = %+v", o)
	}
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	l := Named("classifier").Output(&buf)
	l.Error().Msg("x")
	if got := lines(t, &buf); len(got) != 1 || got[0]["component"] != "classifier" {
		t.Fatalf("lines = %v", got)
	}
}
