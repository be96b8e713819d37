// Package api provides the HTTP API for the application
package api

import (
	"time"

	"spoilerguard/internal/platform/config"
	"spoilerguard/internal/platform/logger"
	phttp "spoilerguard/internal/platform/net/http"
	"spoilerguard/internal/platform/store"

	"spoilerguard/internal/modkit"
	"spoilerguard/internal/modkit/httpkit"
	"spoilerguard/internal/modkit/module"
	"spoilerguard/internal/modkit/swaggerkit"

	metamod "spoilerguard/internal/services/meta/module"
	runsmod "spoilerguard/internal/services/runs/module"
	spoilerdomain "spoilerguard/internal/services/spoiler/domain"
	spoilermod "spoilerguard/internal/services/spoiler/module"
)

// Options are the API options
type Options struct {
	// Config is the root config, modules read their own prefixes from it
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// Spoiler carries the durable tier and classifier prepared by spoilermod.Open
	Spoiler spoilermod.Ports

	Stack          httpkit.StackOptions
	RequestTimeout time.Duration
	EnableProfiler bool
	EnableSwagger  bool
	DocsSuffix     string
}

// Mounted exposes what the binary needs after routes are mounted
type Mounted struct {
	Spoiler     spoilerdomain.ServicePort
	Maintenance spoilerdomain.MaintenancePort
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) Mounted {
	log := logger.Get()
	if opt.Logger != nil {
		log = opt.Logger
	}
	deps := modkit.FromStore(*log, opt.Config, opt.Store)

	timeout := opt.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// runs first so spoiler can record summaries through its port
	runs := runsmod.New(deps, modkit.WithTimeout(timeout))
	sp := opt.Spoiler
	sp.Runs = module.MustPortsOf[runsmod.Ports](runs).Recorder

	spoiler := spoilermod.New(deps, modkit.WithPorts(sp))

	mods := []module.Module{
		metamod.New(deps),
		runs,
		spoiler,
	}

	httpkit.Heartbeat(r, "/health")
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	swaggerkit.Mount(r, swaggerkit.Options{Enabled: opt.EnableSwagger, TitleSuffix: opt.DocsSuffix})

	httpkit.MountAPIV1(r, httpkit.CommonStackWith(opt.Stack), func(api httpkit.Router) {
		for _, m := range mods {
			// ports are looked up by module name
			module.Register(m.Name(), m.Ports())

			// each module owns its prefix under /api/v1
			m.MountRoutes(api)
		}
	})

	exp := module.MustPortsOf[spoilermod.Exposed](spoiler)
	return Mounted{Spoiler: exp.Service, Maintenance: exp.Maintenance}
}
