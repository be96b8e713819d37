package module

import (
	"strings"
	"testing"

	phttp "spoilerguard/internal/platform/net/http"
	kit "spoilerguard/internal/platform/testkit"
)

type Recorder interface{ Record(episode string) }
type Reader interface{ Recent(episode string) int }

type recorder struct{}

func (recorder) Record(string) {}

type reader struct{}

func (reader) Recent(string) int { return 1 }

type runsPorts struct {
	Recorder Recorder
	Reader   Reader
	hidden   Reader
}

type fake struct {
	name  string
	ports any
}

func (f fake) MountRoutes(phttp.Router) {}
func (f fake) Ports() any               { return f.ports }
func (f fake) Name() string             { return f.name }

func TestPortsOf(t *testing.T) {
	ps := runsPorts{Recorder: recorder{}, Reader: reader{}}
	cases := map[string]any{"struct": ps, "pointer": &ps}
	for name, p := range cases {
		m := fake{name: "runs", ports: p}
		if _, ok := PortsOf[Recorder](m); !ok {
			t.Fatalf("%s: recorder not found", name)
		}
		if r, ok := PortsOf[Reader](m); !ok || r.Recent("ep") != 1 {
			t.Fatalf("%s: reader not found", name)
		}
	}

	direct := fake{name: "x", ports: recorder{}}
	if _, ok := PortsOf[Recorder](direct); !ok {
		t.Fatalf("direct implementation not found")
	}

	for _, p := range []any{nil, (*runsPorts)(nil), 42, runsPorts{hidden: reader{}}} {
		if _, ok := PortsOf[Reader](fake{name: "x", ports: p}); ok {
			t.Fatalf("ports %#v should not yield a Reader", p)
		}
	}
}

func TestMustPortsOf_NamesModuleAndType(t *testing.T) {
	v := kit.MustPanic(t, func() { MustPortsOf[Reader](fake{name: "meta"}) })
	msg, _ := v.(string)
	if !strings.Contains(msg, "meta") || !strings.Contains(msg, "module.Reader") {
		t.Fatalf("panic = %v", v)
	}
	if _, ok := any(MustPortsOf[Recorder](fake{name: "runs", ports: runsPorts{Recorder: recorder{}}})).(Recorder); !ok {
		t.Fatalf("MustPortsOf returned wrong value")
	}
}

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)

	Register("runs", runsPorts{Reader: reader{}})
	if got, ok := PortsAs[runsPorts]("runs"); !ok || got.Reader == nil {
		t.Fatalf("PortsAs = %+v %v", got, ok)
	}
	if _, ok := PortsAs[string]("runs"); ok {
		t.Fatalf("wrong type should miss")
	}
	if _, ok := PortsAs[runsPorts]("spoiler"); ok {
		t.Fatalf("unknown name should miss")
	}

	Reset()
	if _, ok := PortsAs[runsPorts]("runs"); ok {
		t.Fatalf("Reset left entries")
	}
}
