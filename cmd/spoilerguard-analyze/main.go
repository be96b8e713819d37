package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spoilerguard/internal/adapters/danmaku"
	"spoilerguard/internal/core/version"
	"spoilerguard/internal/modkit"
	"spoilerguard/internal/modkit/module"
	"spoilerguard/internal/platform/config"
	"spoilerguard/internal/platform/logger"

	"spoilerguard/internal/services/api"
	runsmod "spoilerguard/internal/services/runs/module"
	spoilermod "spoilerguard/internal/services/spoiler/module"

	"github.com/spf13/cobra"
)

var (
	flags   analyzeFlags
	rootCmd = &cobra.Command{
		Use:   "spoilerguard-analyze",
		Short: "Fetch the danmaku of one video and flag spoilers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd.Context(), cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}
)

func main() {
	version.Set("spoilerguard-analyze")

	rootCmd.Flags().Int64Var(&flags.CID, "cid", 0, "video cid to fetch danmaku for (required)")
	rootCmd.Flags().StringVarP(&flags.Episode, "episode", "e", "", "episode id to cache the result under, defaults to the cid")
	rootCmd.Flags().StringVarP(&flags.Title, "title", "t", "", "anime title passed to the classifier")
	rootCmd.Flags().StringVar(&flags.EpisodeTitle, "episode-title", "", "episode title passed to the classifier")
	rootCmd.Flags().BoolVar(&flags.Reanalyze, "reanalyze", false, "drop any cached result and classify again")
	rootCmd.Flags().StringVar(&flags.BaseURL, "danmaku-url", "", "danmaku endpoint override")
	_ = rootCmd.MarkFlagRequired("cid")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAnalyze(ctx context.Context, out io.Writer) error {
	root := config.New()
	l := logger.Get()

	st, err := api.OpenStore(ctx, root, "analyze", *l)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.FromStore(*l, root, st)
	ports, err := spoilermod.Open(ctx, deps, spoilermod.FromConfig(root))
	if err != nil {
		return fmt.Errorf("open spoiler store: %w", err)
	}

	// same module graph as the api, minus http
	runs := runsmod.New(deps)
	ports.Runs = module.MustPortsOf[runsmod.Ports](runs).Recorder
	exp := module.MustPortsOf[spoilermod.Exposed](spoilermod.New(deps, modkit.WithPorts(ports)))

	if _, err := exp.Maintenance.LoadAPIKey(ctx); err != nil {
		l.Warn().Err(err).Msg("api key load failed")
	}
	if _, err := exp.Maintenance.Rehydrate(ctx); err != nil {
		l.Warn().Err(err).Msg("cache rehydrate failed")
	}

	src := danmaku.NewClient(danmaku.Options{
		BaseURL: flags.BaseURL,
		Timeout: root.Prefix("CORE_DANMAKU_").MayDuration("TIMEOUT", 15*time.Second),
	})
	return analyze(ctx, flags, src, exp.Service, out)
}
