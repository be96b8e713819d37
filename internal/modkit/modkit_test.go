package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spoilerguard/internal/modkit/httpkit"
	"spoilerguard/internal/platform/config"
	"spoilerguard/internal/platform/logger"
	phttp "spoilerguard/internal/platform/net/http"
	"spoilerguard/internal/platform/store"
	kit "spoilerguard/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type recorderPorts struct{ name string }

func TestBuild_LaterOptionsWin(t *testing.T) {
	b := Build(
		WithName("runs"), WithPrefix("/runs"), WithTimeout(time.Second),
		WithName("spoiler"), WithPorts(recorderPorts{name: "rec"}),
	)
	if b.Name != "spoiler" || b.Prefix != "/runs" || b.Timeout != time.Second {
		t.Fatalf("built = %+v", b)
	}
	if p, ok := b.Ports.(recorderPorts); !ok || p.name != "rec" {
		t.Fatalf("ports = %#v", b.Ports)
	}
	if b.ModuleName() != "spoiler" {
		t.Fatalf("ModuleName = %q", b.ModuleName())
	}
	kit.MustPanic(t, func() { Build().ModuleName() })
}

func TestBuilt_Mount(t *testing.T) {
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "runs")
			next.ServeHTTP(w, r)
		})
	}
	b := Build(WithPrefix("runs/"), WithTimeout(50*time.Millisecond), WithMiddlewares(tag))

	r := phttp.AdaptChi(chi.NewRouter())
	b.Mount(r, func(sub httpkit.Router) {
		sub.Get("/{episodeId}", func(w http.ResponseWriter, req *http.Request) {
			if _, ok := req.Context().Deadline(); !ok {
				t.Errorf("module timeout not applied")
			}
			_, _ = w.Write([]byte(httpkit.Param(req, "episodeId")))
		})
	})

	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/runs/ep7", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ep7" || rr.Header().Get("X-Module") != "runs" {
		t.Fatalf("code=%d body=%q headers=%v", rr.Code, rr.Body.String(), rr.Header())
	}

	kit.MustPanic(t, func() { Build().Mount(r, func(httpkit.Router) {}) })
}

func TestFromStore(t *testing.T) {
	if d := FromStore(logger.Logger{}, config.New(), nil); d.PG != nil || d.CH != nil || d.Lite != nil || d.RDS != nil {
		t.Fatalf("nil store produced backends: %+v", d)
	}
	d := FromStore(logger.Logger{}, config.New().Prefix("CORE_"), &store.Store{})
	if d.PG != nil || d.CH != nil || d.Lite != nil || d.RDS != nil {
		t.Fatalf("empty store produced backends: %+v", d)
	}
}
