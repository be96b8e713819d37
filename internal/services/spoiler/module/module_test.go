package module

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	modkit "spoilerguard/internal/modkit"
	modreg "spoilerguard/internal/modkit/module"
	"spoilerguard/internal/platform/config"
	phttp "spoilerguard/internal/platform/net/http"
	kit "spoilerguard/internal/platform/testkit"
	spoilerrepo "spoilerguard/internal/services/spoiler/repo"

	"github.com/go-chi/chi/v5"
)

type keyOnly struct{ key string }

func (k *keyOnly) Classify(context.Context, string, string, string) (string, error) { return "无", nil }
func (k *keyOnly) SetAPIKey(s string)                                               { k.key = s }
func (k *keyOnly) HasAPIKey() bool                                                  { return k.key != "" }

func TestNew_RequiresKV(t *testing.T) {
	kit.MustPanic(t, func() { _ = New(modkit.Deps{Cfg: config.New()}) })
}

func TestNew_MountsRoutesAndExposesPorts(t *testing.T) {
	deps := modkit.Deps{Cfg: config.New()}
	m := New(deps, modkit.WithPorts(Ports{KV: spoilerrepo.NewMemory(), Classifier: &keyOnly{key: "k"}}))

	if m.Name() != "spoiler" {
		t.Fatalf("name = %q", m.Name())
	}
	exp := modreg.MustPortsOf[Exposed](m)
	if exp.Service == nil || exp.Maintenance == nil {
		t.Fatalf("ports not exposed: %+v", exp)
	}
	if n, err := exp.Maintenance.Rehydrate(context.Background()); err != nil || n != 0 {
		t.Fatalf("rehydrate n=%d err=%v", n, err)
	}

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/spoiler/status", nil))
	if rr.Code != stdhttp.StatusOK {
		t.Fatalf("status route = %d", rr.Code)
	}
}

func TestOpen_MemoryStore(t *testing.T) {
	p, err := Open(context.Background(), modkit.Deps{}, Options{Store: spoilerrepo.KindMemory})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if p.KV == nil || p.Classifier == nil || p.Classifier.HasAPIKey() {
		t.Fatalf("unexpected ports %+v", p)
	}
	if _, err := Open(context.Background(), modkit.Deps{}, Options{Store: spoilerrepo.KindRedis}); err == nil {
		t.Fatalf("redis without backend should fail")
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_SPOILER_STORE", "redis")
	t.Setenv("CORE_SPOILER_BATCH_SIZE", "50")
	t.Setenv("CORE_SPOILER_RETENTION", "48h")
	t.Setenv("CORE_CLASSIFIER_API_KEY", "sk-env")
	t.Setenv("CORE_CLASSIFIER_MODEL", "moonshot-v1-32k")

	o := FromConfig(config.New())
	if o.Store != "redis" || o.Service.BatchSize != 50 || o.Service.Retention != 48*time.Hour {
		t.Fatalf("spoiler options %+v", o)
	}
	if o.Service.MaxBatchesPerRun != 3 || o.Service.BatchDelay != time.Second || o.SweepEvery != time.Hour {
		t.Fatalf("defaults lost %+v", o)
	}
	if o.Classifier.APIKey != "sk-env" || o.Classifier.Model != "moonshot-v1-32k" || o.Classifier.Timeout != time.Minute {
		t.Fatalf("classifier options %+v", o.Classifier)
	}

	t.Setenv("CORE_SPOILER_STORE", "dynamo")
	kit.MustPanic(t, func() { _ = FromConfig(config.New()) })
}
