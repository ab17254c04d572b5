package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"tabworks/pxtab/pkg/catalog"
	"tabworks/pxtab/pkg/cli"
	"tabworks/pxtab/pkg/config"
	"tabworks/pxtab/pkg/fetch"
	"tabworks/pxtab/pkg/pcaxis/parser"
	"tabworks/pxtab/pkg/store"
	"tabworks/pxtab/pkg/store/retention"
	"tabworks/pxtab/pkg/telemetry/health"
	"tabworks/pxtab/pkg/telemetry/logging"
	"tabworks/pxtab/pkg/telemetry/metrics"
)

// shutdownTimeout bounds the graceful metrics server shutdown.
const shutdownTimeout = 10 * time.Second

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the pxtab catalog service",
	Long: `Start the catalog service with the specified configuration.

The service refreshes every configured source once at startup, then on
the configured cron schedules. With watch enabled, file-backed sources
are additionally re-parsed when they change on disk. With metrics
enabled, a Prometheus endpoint reports parse, fetch and refresh
activity; the same listener serves /health, /ready and /version probes.
With the store enabled, retention limits prune old datasets on their
own schedule.

Examples:
  # Start with default config
  pxtab run

  # Start with custom config
  pxtab run --config /etc/pxtab/config.yaml

  # Override the metrics listen address
  pxtab run --listen 0.0.0.0:9090

  # Validate config without starting the service
  pxtab run --dry-run`,
	RunE: runService,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override metrics listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the service")
}

func runService(cmd *cobra.Command, args []string) error {
	// Load configuration
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Telemetry.Metrics.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	}); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	// Print startup banner
	printBanner(cfg)

	// Open the dataset store (if enabled)
	var st *store.Store
	if cfg.Store.Enabled {
		var err error
		st, err = store.Open(&store.Config{
			Path:         cfg.Store.Path,
			MaxOpenConns: cfg.Store.MaxOpenConns,
			MaxIdleConns: cfg.Store.MaxIdleConns,
			WALMode:      cfg.Store.WALMode,
			BusyTimeout:  cfg.Store.BusyTimeout,
		})
		if err != nil {
			return cli.NewCommandError("run", fmt.Errorf("failed to open dataset store: %w", err))
		}
		defer st.Close()
		fmt.Printf("✓ Dataset store open (%s)\n", cfg.Store.Path)
	}

	// Create the metrics collector (if enabled)
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	// Sources that do not name a charset inherit the fetch default.
	for i := range cfg.Catalog.Sources {
		if cfg.Catalog.Sources[i].Encoding == "" {
			cfg.Catalog.Sources[i].Encoding = cfg.Fetch.DefaultEncoding
		}
	}

	slog.Info("initializing catalog", "sources", len(cfg.Catalog.Sources))
	fetcher := fetch.New(fetch.Config{
		Timeout:     cfg.Fetch.Timeout,
		MaxBodySize: cfg.Fetch.MaxBodySize,
		UserAgent:   cfg.Fetch.UserAgent,
	})
	px := parser.NewParser().WithMaxDocumentSize(cfg.Parser.MaxDocumentSize)

	cat, err := catalog.New(&cfg.Catalog, fetcher, px, st, collector)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	fmt.Printf("✓ Catalog ready (%d sources)\n", len(cat.Sources()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initial refresh before the schedule takes over. Failures are
	// logged, not fatal: the schedule retries them.
	if err := cat.RefreshAll(ctx); err != nil {
		slog.Warn("initial refresh incomplete", "error", err)
	}
	fmt.Printf("✓ Sources refreshed (%d datasets)\n", len(cat.Entries()))

	if err := cat.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	if next := cat.NextRun(); next != nil {
		slog.Debug("refresh scheduled", "next_run", next)
	}

	// Enforce retention limits on the store: once now, then on schedule
	var pruner *retention.Pruner
	if st != nil {
		rcfg := &retention.Config{
			MaxAgeDays:   cfg.Store.Retention.MaxAgeDays,
			MaxPerSource: cfg.Store.Retention.MaxPerSource,
			Schedule:     cfg.Store.Retention.Schedule,
		}
		if rcfg.Enabled() {
			pruner = retention.NewPruner(st, rcfg)
			if _, err := pruner.Prune(ctx); err != nil {
				slog.Warn("initial retention pruning failed", "error", err)
			}
			if err := pruner.Start(ctx); err != nil {
				return cli.NewCommandError("run", err)
			}
			fmt.Printf("✓ Retention pruning scheduled (%s)\n", rcfg.Schedule)
		}
	}

	// Start the metrics server in a background goroutine (if enabled)
	errChan := make(chan error, 1)
	var metricsSrv *http.Server
	if collector != nil {
		checker := health.New(0)
		if st != nil {
			checker.RegisterCheck("store", st.Ping)
		}
		checker.RegisterCheck("catalog", func(ctx context.Context) error {
			if len(cat.Sources()) > 0 && len(cat.Entries()) == 0 {
				return errors.New("no source refreshed yet")
			}
			return nil
		})

		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
		checker.Register(mux, health.BuildInfo{
			Version:   Version,
			Commit:    GitCommit,
			BuildDate: BuildDate,
		})
		metricsSrv = &http.Server{
			Addr:    cfg.Telemetry.Metrics.ListenAddress,
			Handler: mux,
		}
		go func() {
			slog.Info("starting metrics server",
				"address", cfg.Telemetry.Metrics.ListenAddress,
				"path", cfg.Telemetry.Metrics.Path,
			)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n",
			cfg.Telemetry.Metrics.ListenAddress, cfg.Telemetry.Metrics.Path)
	}

	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for shutdown signal or server error
	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		return cli.NewCommandError("run", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cat.Stop()
		if pruner != nil {
			pruner.Stop()
		}

		if metricsSrv != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()

			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				slog.Error("shutdown failed", "error", err)
				return cli.NewCommandError("run", err)
			}
		}

		fmt.Println("✓ Stopped")
		return nil
	}
}

func printBanner(cfg *config.Config) {
	fmt.Printf("pxtab v%s\n", Version)
	if cfgFile != "" {
		fmt.Printf("Loading configuration from: %s\n", cfgFile)
	}
	fmt.Println("✓ Configuration loaded")

	slog.Debug("catalog configured",
		"sources", len(cfg.Catalog.Sources),
		"schedule", cfg.Catalog.RefreshSchedule,
		"watch", cfg.Catalog.Watch,
	)
	if cfg.Store.Enabled {
		slog.Debug("store enabled", "path", cfg.Store.Path)
		if cfg.Store.Retention.MaxAgeDays > 0 || cfg.Store.Retention.MaxPerSource > 0 {
			slog.Debug("retention enabled",
				"max_age_days", cfg.Store.Retention.MaxAgeDays,
				"max_per_source", cfg.Store.Retention.MaxPerSource,
				"schedule", cfg.Store.Retention.Schedule,
			)
		}
	}
	if cfg.Telemetry.Metrics.Enabled {
		slog.Debug("metrics enabled", "address", cfg.Telemetry.Metrics.ListenAddress)
	}
}
