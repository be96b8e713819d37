// Package module wires the run log into the API
package module

import (
	modkit "spoilerguard/internal/modkit"
	"spoilerguard/internal/modkit/httpkit"
	runshttp "spoilerguard/internal/services/runs/http"
	runsrepo "spoilerguard/internal/services/runs/repo"
	runssvc "spoilerguard/internal/services/runs/service"
)

// memoryRows bounds the in process log used without clickhouse
const memoryRows = 1000

// Module is the runs module
type Module struct {
	b     modkit.Built
	ports Ports
	svc   runssvc.Service
}

// New constructs the runs module, backed by clickhouse when deps carry it
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("runs"), modkit.WithPrefix("/runs")}, opts...)...)

	var repo runsrepo.Repo
	if deps.CH != nil {
		repo = runsrepo.NewCH(deps.CH)
	} else {
		repo = runsrepo.NewMemory(memoryRows)
	}
	svc := runssvc.New(repo)
	port := adaptRunsPort{svc: svc}

	return &Module{b: b, svc: svc, ports: Ports{Recorder: port, Reader: port}}
}

// MountRoutes mounts GET {prefix}/{episodeId}
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) { runshttp.Register(sub, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.ModuleName() }
