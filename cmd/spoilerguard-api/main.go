// @title         Spoilerguard API
// @version       0.1.0
// @description   Spoiler classification for timed video comments

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"spoilerguard/internal/core/version"
	"spoilerguard/internal/modkit"
	"spoilerguard/internal/modkit/httpkit"
	"spoilerguard/internal/modkit/repokit"
	"spoilerguard/internal/platform/config"
	"spoilerguard/internal/platform/logger"
	phttp "spoilerguard/internal/platform/net/http"
	"spoilerguard/internal/platform/scheduler"

	runsrepo "spoilerguard/internal/services/runs/repo"

	"spoilerguard/internal/services/api"
	spoilermod "spoilerguard/internal/services/spoiler/module"
)

func main() {
	version.Set("spoilerguard-api")

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := api.OpenStore(ctx, root, "api", *l)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(ctx, st)

	if st.CH != nil {
		if err := runsrepo.EnsureSchema(ctx, st.CH); err != nil {
			l.Panic().Err(err).Msg("runs schema failed")
		}
	}

	spOpts := spoilermod.FromConfig(root)
	ports, err := spoilermod.Open(ctx, modkit.FromStore(*l, root, st), spOpts)
	if err != nil {
		l.Panic().Err(err).Str("store", spOpts.Store).Msg("spoiler store open failed")
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(root.Prefix("CORE_"))

	mounted := api.Mount(
		srv.Router(),
		api.Options{
			Config:  root,
			Store:   st,
			Logger:  l,
			Spoiler: ports,
			Stack: httpkit.StackOptions{
				AllowedOrigins: apiCfg.MayCSV("ALLOWED_ORIGINS", nil),
				SlowRequest:    apiCfg.MayDuration("SLOW_REQUEST", 10*time.Second),
			},
			RequestTimeout: apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableSwagger:  apiCfg.MayBool("SWAGGER", false),
			DocsSuffix:     apiCfg.MayString("DOCS_TITLE_SUFFIX", ""),
		},
	)

	// warm the memory tier, drop what expired while we were down, restore the credential
	maint := mounted.Maintenance
	if n, err := maint.Rehydrate(ctx); err != nil {
		l.Warn().Err(err).Msg("cache rehydrate failed")
	} else {
		l.Info().Int("entries", n).Msg("cache rehydrated")
	}
	if n, err := maint.SweepExpired(ctx); err != nil {
		l.Warn().Err(err).Int("removed", n).Msg("boot sweep incomplete")
	}
	if ok, err := maint.LoadAPIKey(ctx); err != nil {
		l.Warn().Err(err).Msg("api key load failed")
	} else if !ok {
		l.Warn().Msg("no classifier api key configured, analyze will fail until one is set")
	}

	sched := scheduler.New()
	if err := sched.Every("spoiler-sweep", spOpts.SweepEvery, func(ctx context.Context) error {
		n, err := maint.SweepExpired(ctx)
		if n > 0 {
			l.Info().Int("removed", n).Msg("expired analyses swept")
		}
		return err
	}); err != nil {
		l.Panic().Err(err).Msg("scheduler setup failed")
	}
	sched.Start()

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()
	l.Info().Str("store", spOpts.Store).Dur("sweep_every", spOpts.SweepEvery).Msg("spoilerguard api started")

	select {
	case <-ctx.Done():
		l.Info().Msg("shutting down")
	case err := <-errc:
		if err != nil {
			l.Error().Err(err).Msg("http server stopped")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), apiCfg.MayDuration("SHUTDOWN_TIMEOUT", 15*time.Second))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("http shutdown failed")
	}
	sched.Stop()
}
