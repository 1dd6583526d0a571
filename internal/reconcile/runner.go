package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teemow/asanasync/internal/instrumentation"
	"github.com/teemow/asanasync/internal/logging"
)

// DefaultInterval is the pause between sync cycles.
const DefaultInterval = 10 * time.Second

// CycleRunner runs one reconciliation cycle. Satisfied by *Reconciler.
type CycleRunner interface {
	RunCycle(ctx context.Context) (Stats, error)
}

// Runner drives the reconciler on a fixed interval: one cycle at a time,
// never overlapping, until the context is cancelled.
type Runner struct {
	cycles   CycleRunner
	interval time.Duration
	paused   bool
	logger   *slog.Logger
	metrics  *instrumentation.Metrics
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithInterval sets the pause between cycles.
func WithInterval(d time.Duration) RunnerOption {
	return func(r *Runner) { r.interval = d }
}

// WithPaused makes Run block until cancellation without syncing. Used while
// an operator performs interactive authorization out-of-band.
func WithPaused(paused bool) RunnerOption {
	return func(r *Runner) { r.paused = paused }
}

// WithRunnerLogger sets the logger. Defaults to slog.Default().
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// WithRunnerMetrics sets the metrics recorder.
func WithRunnerMetrics(m *instrumentation.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner creates a runner over the given cycle runner.
func NewRunner(cycles CycleRunner, opts ...RunnerOption) *Runner {
	r := &Runner{
		cycles:   cycles,
		interval: DefaultInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loops until the context is cancelled or a fatal error occurs. The
// first cycle starts immediately. Non-fatal cycle errors are logged and the
// loop continues after the usual interval; a clean shutdown returns nil.
func (r *Runner) Run(ctx context.Context) error {
	if r.paused {
		r.logger.Info("sync paused; sleeping until shutdown")
		<-ctx.Done()
		return nil
	}

	for {
		if err := r.runOnce(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(r.interval):
		}
	}
}

// RunOnce executes exactly one cycle and surfaces its error directly,
// bypassing the retry policy. Used by the --once flag.
func (r *Runner) RunOnce(ctx context.Context) error {
	start := time.Now()
	stats, err := r.cycles.RunCycle(ctx)
	r.metrics.RecordCycle(ctx, err, time.Since(start))
	if err != nil {
		return err
	}
	r.logger.Info("sync cycle complete",
		logging.Status(logging.StatusSuccess),
		slog.Int("created", stats.Created),
		slog.Int("replaced", stats.Replaced),
		slog.Int("completed", stats.Completed),
		slog.Int("deleted", stats.Deleted))
	return nil
}

func (r *Runner) runOnce(ctx context.Context) error {
	start := time.Now()
	stats, err := r.cycles.RunCycle(ctx)
	r.metrics.RecordCycle(ctx, err, time.Since(start))

	if err != nil {
		// Cancellation surfaces as a remote error; treat it as shutdown.
		if ctx.Err() != nil {
			return nil
		}
		if Fatal(err) {
			return fmt.Errorf("fatal sync error: %w", err)
		}
		r.logger.Error("sync cycle failed, will retry next cycle",
			logging.Status(logging.StatusError),
			logging.Err(err))
		return nil
	}

	if stats.Zero() {
		r.logger.Debug("sync cycle complete, no changes")
	} else {
		r.logger.Info("sync cycle complete",
			logging.Status(logging.StatusSuccess),
			slog.Int("created", stats.Created),
			slog.Int("replaced", stats.Replaced),
			slog.Int("completed", stats.Completed),
			slog.Int("deleted", stats.Deleted))
	}
	return nil
}
