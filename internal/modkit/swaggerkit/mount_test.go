package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "spoilerguard/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, r phttp.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func withDoc(t *testing.T, raw string) {
	t.Helper()
	prev := docReader
	docReader = func() string { return raw }
	t.Cleanup(func() { docReader = prev })
}

func TestMount_Disabled(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{})
	if rr := serve(t, r, "/api/docs/doc.json"); rr.Code != http.StatusNotFound {
		t.Fatalf("disabled docs served %d", rr.Code)
	}
}

func TestMount_RedirectsRoot(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{Enabled: true})
	rr := serve(t, r, "/api/docs")
	if rr.Code != http.StatusPermanentRedirect || rr.Header().Get("Location") != "/api/docs/" {
		t.Fatalf("got %d location=%q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestDocJSON_ShapesDocument(t *testing.T) {
	withDoc(t, `{"openapi":"3.1.0","info":{"title":"Spoilerguard API"},"paths":{
		"/spoiler/status":{"get":{"responses":{"200":{"description":"ok"}}}},
		"/runs/{episodeId}":{"get":{"responses":{"422":{"description":"bad limit"}}}}
	}}`)
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{Enabled: true, TitleSuffix: "(staging)"})

	rr := serve(t, r, "/api/docs/doc.json")
	if rr.Code != http.StatusOK || rr.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("got %d headers=%v", rr.Code, rr.Header())
	}
	var spec struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
		Servers    []map[string]string `json:"servers"`
		Components struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
		Paths map[string]map[string]struct {
			Responses map[string]struct {
				Description string `json:"description"`
			} `json:"responses"`
		} `json:"paths"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.OpenAPI != "3.0.3" || spec.Info.Title != "Spoilerguard API (staging)" {
		t.Fatalf("version/title not normalized: %s %q", spec.OpenAPI, spec.Info.Title)
	}
	if len(spec.Servers) != 1 || spec.Servers[0]["url"] != "/api/v1" {
		t.Fatalf("servers = %v", spec.Servers)
	}
	if _, ok := spec.Components.Schemas["Envelope"]; !ok {
		t.Fatalf("envelope schema missing")
	}
	status := spec.Paths["/spoiler/status"]["get"].Responses
	if status["500"].Description != "Internal Server Error" || status["422"].Description != "Unprocessable Entity" {
		t.Fatalf("defaults not added: %+v", status)
	}
	if runs := spec.Paths["/runs/{episodeId}"]["get"].Responses; runs["422"].Description != "bad limit" {
		t.Fatalf("documented response overwritten: %+v", runs)
	}
}

func TestDocJSON_LiftsSwagger2(t *testing.T) {
	spec := map[string]any{"swagger": "2.0", "servers": []any{map[string]any{"url": "/x"}}}
	normalizeVersion(spec, "/api/v1")
	if _, ok := spec["swagger"]; ok || spec["openapi"] != "3.0.3" {
		t.Fatalf("not lifted: %v", spec)
	}
	if s := spec["servers"].([]any); s[0].(map[string]any)["url"] != "/x" {
		t.Fatalf("existing servers replaced: %v", s)
	}
}

func TestDocJSON_BadDocument(t *testing.T) {
	withDoc(t, "{not json")
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{Enabled: true})
	if rr := serve(t, r, "/api/docs/doc.json"); rr.Code != http.StatusInternalServerError {
		t.Fatalf("want 500 got %d", rr.Code)
	}
}

func TestRegister_MutatorRuns(t *testing.T) {
	mu.Lock()
	prev := mutators
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		mutators = prev
		mu.Unlock()
	})
	Register(nil)
	Register(func(spec map[string]any) { spec["x-cache-ttl"] = "7d" })

	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{Enabled: true})
	var spec map[string]any
	if err := json.Unmarshal(serve(t, r, "/api/docs/doc.json").Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec["x-cache-ttl"] != "7d" {
		t.Fatalf("mutator not applied: %v", spec)
	}
}
