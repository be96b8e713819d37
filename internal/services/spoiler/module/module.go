// Package module wires spoiler analysis into the API using modkit
package module

import (
	"context"

	"spoilerguard/internal/adapters/classifier"
	modkit "spoilerguard/internal/modkit"
	"spoilerguard/internal/modkit/httpkit"
	"spoilerguard/internal/services/spoiler/domain"
	spoilerhttp "spoilerguard/internal/services/spoiler/http"
	spoilerrepo "spoilerguard/internal/services/spoiler/repo"
	spoilersvc "spoilerguard/internal/services/spoiler/service"
)

// Module is the spoiler module
type Module struct {
	b     modkit.Built
	ports Exposed
	svc   *spoilersvc.Svc
}

// Ports are the collaborators injected into the module
// KV is required, a nil Classifier is built from config and a nil Runs drops summaries
type Ports struct {
	KV         domain.KVStore
	Classifier domain.Classifier
	Runs       domain.RunRecorder
}

// Open prepares Ports from deps, opening the durable tier named by o.Store
func Open(ctx context.Context, deps modkit.Deps, o Options) (Ports, error) {
	kv, err := spoilerrepo.Open(ctx, o.Store, spoilerrepo.Backends{PG: deps.PG, Lite: deps.Lite, RDS: deps.RDS})
	if err != nil {
		return Ports{}, err
	}
	return Ports{KV: kv, Classifier: classifier.NewClient(o.Classifier)}, nil
}

// New constructs the spoiler module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	cfg := FromConfig(deps.Cfg)
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("spoiler"),
		modkit.WithPrefix("/spoiler"),
		modkit.WithTimeout(cfg.RouteTimeout),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.KV == nil {
		panic("spoiler module requires a KV port (see module.Open)")
	}
	if injected.Classifier == nil {
		injected.Classifier = classifier.NewClient(cfg.Classifier)
	}

	svc := spoilersvc.New(cfg.Service, injected.KV, injected.Classifier, injected.Runs)

	return &Module{b: b, svc: svc, ports: Exposed{Service: svc, Maintenance: svc}}
}

// MountRoutes mounts the analyze, cache and api key routes
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(sub httpkit.Router) { spoilerhttp.Register(sub, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.ModuleName() }
