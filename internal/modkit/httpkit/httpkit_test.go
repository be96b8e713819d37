package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "spoilerguard/internal/platform/errors"
	phttp "spoilerguard/internal/platform/net/http"
	"spoilerguard/internal/platform/net/http/bind"

	"github.com/go-chi/chi/v5"
)

type keyIn struct {
	APIKey string `json:"apiKey" validate:"required"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, Envelope) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	var env Envelope
	if rr.Body.Len() > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rr.Body.String(), err)
		}
	}
	return rr.Code, env
}

func TestSugar_MountsEnvelopedHandlers(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Get(r, "/status", func(*http.Request) (any, error) { return map[string]bool{"hasApiKey": true}, nil })
	Delete(r, "/cache/{episodeId}", func(req *http.Request) (any, error) {
		if Param(req, "episodeId") == "missing" {
			return NoContent(), nil
		}
		return map[string]bool{"removed": true}, nil
	})
	PutJSON(r, "/api-key", func(_ *http.Request, in keyIn) (any, error) { return nil, nil })
	PostJSON(r, "/strict", func(_ *http.Request, in keyIn) (any, error) { return in.APIKey, nil })
	PostJSONWith(r, "/loose", bind.JSONOptions{AllowUnknown: true}, func(_ *http.Request, in keyIn) (any, error) {
		return in.APIKey, nil
	})
	h := r.Mux()

	if code, env := do(t, h, http.MethodGet, "/status", ""); code != http.StatusOK || !env.Success {
		t.Fatalf("status: %d %+v", code, env)
	}
	if code, _ := do(t, h, http.MethodDelete, "/cache/ep1", ""); code != http.StatusOK {
		t.Fatalf("delete: %d", code)
	}
	if code, _ := do(t, h, http.MethodDelete, "/cache/missing", ""); code != http.StatusNoContent {
		t.Fatalf("delete passthrough: %d", code)
	}
	if code, env := do(t, h, http.MethodPut, "/api-key", `{}`); code != http.StatusBadRequest || env.Code != perr.ErrorCodeValidation {
		t.Fatalf("put invalid: %d %+v", code, env)
	}
	if code, _ := do(t, h, http.MethodPost, "/strict", `{"apiKey":"k","x":1}`); code != http.StatusBadRequest {
		t.Fatalf("strict unknown field: %d", code)
	}
	if code, env := do(t, h, http.MethodPost, "/loose", `{"apiKey":"k","x":1}`); code != http.StatusOK || env.Data != "k" {
		t.Fatalf("loose: %d %+v", code, env)
	}
}

func TestMountAPIV1_AppliesStack(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Heartbeat(r, "/health")
	MountAPIV1(r, CommonStackWith(StackOptions{AllowedOrigins: []string{"chrome-extension://abc"}}), func(api Router) {
		Get(api, "/meta/version", func(*http.Request) (any, error) { return "v", nil })
		Get(api, "/boom", func(*http.Request) (any, error) { panic("boom") })
	})
	h := r.Mux()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/meta/version/", nil)
	req.Header.Set("Origin", "chrome-extension://abc")
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("trailing slash not stripped: %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "chrome-extension://abc" {
		t.Fatalf("cors header missing: %v", rr.Header())
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatalf("no-cache header missing")
	}

	code, env := do(t, h, http.MethodGet, "/api/v1/boom", "")
	if code != http.StatusInternalServerError || env.Code != perr.ErrorCodePanic {
		t.Fatalf("panic: %d %+v", code, env)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("heartbeat: %d", rr.Code)
	}
}

func TestTimeout(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Deadline(); ok {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	Timeout(0)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("zero timeout should pass through, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	Timeout(time.Second)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("deadline not set, got %d", rr.Code)
	}
}
