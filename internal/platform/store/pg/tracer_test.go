package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	cases := map[string]string{
		"select 1": "select 1",
		"\nINSERT INTO spoiler_kv (k, v)\n\tVALUES ($1, $2)\n": "INSERT INTO spoiler_kv (k, v) VALUES ($1, $2)",
		"": "",
	}
	for in, want := range cases {
		if got := compact(in); got != want {
			t.Fatalf("compact(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTracer_LevelsAndRedaction(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	tr.OnQuery(context.Background(), QueryEvent{
		SQL:       "INSERT INTO spoiler_kv (k, v) VALUES ($1, $2)",
		Args:      []any{"setting_apiKey", "sk-secret"},
		ElapsedUS: 1500,
	})
	tr.OnQuery(context.Background(), QueryEvent{SQL: "SELECT 1", ElapsedUS: 900000, Slow: true, Err: errors.New("boom")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d: %s", len(lines), buf.String())
	}
	if strings.Contains(buf.String(), "sk-secret") {
		t.Fatalf("argument value leaked into the log")
	}

	var first, second struct {
		Level     string  `json:"level"`
		ElapsedMS float64 `json:"elapsed_ms"`
		Args      int     `json:"args"`
		Error     string  `json:"error"`
		Component string  `json:"component"`
	}
	_ = json.Unmarshal([]byte(lines[0]), &first)
	_ = json.Unmarshal([]byte(lines[1]), &second)

	if first.Level != "info" || first.ElapsedMS != 1.5 || first.Args != 2 || first.Component != "pg" {
		t.Fatalf("first line %+v", first)
	}
	if second.Level != "warn" || second.Error != "boom" {
		t.Fatalf("second line %+v", second)
	}
}
