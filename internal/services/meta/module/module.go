// Package module mounts the meta endpoints
package module

import (
	"time"

	"spoilerguard/internal/core/version"
	modkit "spoilerguard/internal/modkit"
	"spoilerguard/internal/modkit/httpkit"
	metahttp "spoilerguard/internal/services/meta/http"
)

// Module serves version, liveness and readiness
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs the meta module, readiness probes every backend deps carries
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{b: b, deps: metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   time.Now(),
		Checks:      checks(deps),
	}}
}

// checks lists every backend seam, nil interfaces stay nil so disabled stores report skipped
func checks(d modkit.Deps) []metahttp.Check {
	out := []metahttp.Check{{Name: "pg"}, {Name: "ch"}, {Name: "sqlite"}, {Name: "redis"}}
	if d.PG != nil {
		out[0].Seam = d.PG
	}
	if d.CH != nil {
		out[1].Seam = d.CH
	}
	if d.Lite != nil {
		out[2].Seam = d.Lite
	}
	if d.RDS != nil {
		out[3].Seam = d.RDS
	}
	return out
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) { metahttp.Register(sub, m.deps) })
}

func (m *Module) Name() string { return m.b.ModuleName() }

// Ports is nil, nothing depends on meta
func (m *Module) Ports() any { return nil }
