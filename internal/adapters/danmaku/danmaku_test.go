package danmaku

import (
	"bytes"
	"compress/flate"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "spoilerguard/internal/platform/errors"
)

const doc = `<?xml version="1.0" encoding="UTF-8"?>
<i>
  <chatserver>chat.bilibili.com</chatserver>
  <chatid>1176840</chatid>
  <d p="65.432,1,25,16777215,1690000000,0,ab12cd34,1000000000000000001,11">他其实是卧底</d>
  <d p="0.5,5,25,16711680,1690000001,0,ef56ab78,1000000000000000002,11">前方高能</d>
  <d p="bad,1,25">broken</d>
  <d p="12,1,25,16777215,1690000002,0,ff00ff00,,11">no id</d>
  <d p="3600,1,25,16777215,1690000003,1,00000000,1000000000000000003,11">a &amp; b</d>
</i>`

func TestParse_DocumentOrderAndFields(t *testing.T) {
	got, skipped, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if skipped != 2 {
		t.Fatalf("skipped = %d want 2", skipped)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d want 3", len(got))
	}

	first := got[0]
	if first.ID != "1000000000000000001" || first.Content != "他其实是卧底" {
		t.Fatalf("first = %+v", first)
	}
	if first.ProgressMs != 65432 {
		t.Fatalf("progress = %d want 65432", first.ProgressMs)
	}
	if first.Mode != 1 || first.FontSize != 25 || first.Color != 16777215 || first.Timestamp != 1690000000 || first.UserHash != "ab12cd34" {
		t.Fatalf("metadata = %+v", first)
	}
	if got[1].ProgressMs != 500 || got[1].Mode != 5 {
		t.Fatalf("second = %+v", got[1])
	}
	if got[2].Content != "a & b" || got[2].ProgressMs != 3600000 || got[2].Pool != 1 {
		t.Fatalf("third = %+v", got[2])
	}
}

func TestParse_Empty(t *testing.T) {
	got, skipped, err := Parse(strings.NewReader(`<i></i>`))
	if err != nil || len(got) != 0 || skipped != 0 {
		t.Fatalf("Parse(empty) = %v,%d,%v", got, skipped, err)
	}
}

func TestFetch_Deflate(t *testing.T) {
	var buf bytes.Buffer
	fw, _ := flate.NewWriter(&buf, flate.BestSpeed)
	_, _ = fw.Write([]byte(doc))
	_ = fw.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1176840.xml" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Encoding", "deflate")
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	got, err := c.Fetch(context.Background(), 1176840)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d want 3", len(got))
	}
}

func TestFetch_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		code   perr.ErrorCode
	}{
		{http.StatusNotFound, perr.ErrorCodeNotFound},
		{http.StatusTooManyRequests, perr.ErrorCodeTooManyRequests},
		{http.StatusBadGateway, perr.ErrorCodeUnavailable},
	}
	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		c := NewClient(Options{BaseURL: srv.URL})
		_, err := c.Fetch(context.Background(), 1)
		srv.Close()
		if got := perr.CodeOf(err); got != tc.code {
			t.Fatalf("status %d mapped to %v want %v", tc.status, got, tc.code)
		}
	}
}

func TestFetch_RejectsNonPositiveCID(t *testing.T) {
	c := NewClient(Options{})
	if _, err := c.Fetch(context.Background(), 0); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}
