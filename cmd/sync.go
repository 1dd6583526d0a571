package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/asanasync/internal/asana"
	"github.com/teemow/asanasync/internal/config"
	"github.com/teemow/asanasync/internal/gtasks"
	"github.com/teemow/asanasync/internal/instrumentation"
	"github.com/teemow/asanasync/internal/logging"
	"github.com/teemow/asanasync/internal/reconcile"
	"github.com/teemow/asanasync/internal/server"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newSyncCmd() *cobra.Command {
	var (
		interval      time.Duration
		once          bool
		debugMode     bool
		metricsConfig MetricsConfig
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run the Asana to Google Tasks sync daemon",
		Long: `Continuously mirror incomplete Asana tasks with a due date into a Google
Tasks list, and propagate completions on the mirror back to Asana.

Configuration comes from the environment (or a .env file); ASANA_PAT and
ASANA_USER_TASK_LIST_GID are required. Run 'asanasync auth' once before the
first sync to authorize Google Tasks access.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(interval, once, debugMode, metricsConfig)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Pause between sync cycles (overrides SYNC_INTERVAL)")
	cmd.Flags().BoolVar(&once, "once", false, "Run a single sync cycle and exit")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	// Metrics server flags
	cmd.Flags().BoolVar(&metricsConfig.Enabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsConfig.Addr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runSync(interval time.Duration, once bool, debugMode bool, metricsConfig MetricsConfig) error {
	logging.Setup(debugMode)
	logger := logging.WithOperation(slog.Default(), "sync")

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if interval > 0 {
		cfg.Interval = interval
	}

	logger.Debug("configuration loaded",
		slog.String("gtasks_list", cfg.GTasksListName),
		slog.Duration("interval", cfg.Interval),
		slog.String("asana_token", logging.SanitizeToken(cfg.AsanaPAT)))

	// Load metrics config from environment if not set via flags
	if os.Getenv("METRICS_ENABLED") == "false" {
		metricsConfig.Enabled = false
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == ":9090" {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.Printf("Error during instrumentation shutdown: %v", err)
		}
	}()

	// Start metrics server if enabled; the one-shot mode has no use for it
	var metricsServer *server.MetricsServer
	if !once && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(metricsConfig.Addr, provider)
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("Metrics server error: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}()
	}

	asanaOpts := []asana.Option{asana.WithWindowHours(cfg.WindowHours)}
	if cfg.AsanaBaseURL != "" {
		asanaOpts = append(asanaOpts, asana.WithBaseURL(cfg.AsanaBaseURL))
	}
	source, err := asana.NewClient(ctx, cfg.AsanaPAT, cfg.AsanaUserTaskListGID, asanaOpts...)
	if err != nil {
		return fmt.Errorf("failed to create asana client: %w", err)
	}

	mirror, err := gtasks.NewClient(ctx, cfg.GTasksListName)
	if err != nil {
		return fmt.Errorf("failed to create google tasks client: %w", err)
	}

	reconciler := reconcile.NewReconciler(source, mirror,
		reconcile.WithLogger(logger),
		reconcile.WithMetrics(provider.Metrics()),
		reconcile.WithTracer(provider.Tracer("reconcile")),
	)

	runner := reconcile.NewRunner(reconciler,
		reconcile.WithInterval(cfg.Interval),
		reconcile.WithPaused(cfg.Paused),
		reconcile.WithRunnerLogger(logger),
		reconcile.WithRunnerMetrics(provider.Metrics()),
	)

	if once {
		return runner.RunOnce(ctx)
	}
	return runner.Run(ctx)
}
