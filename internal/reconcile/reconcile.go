package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/teemow/asanasync/internal/asana"
	"github.com/teemow/asanasync/internal/correlate"
	"github.com/teemow/asanasync/internal/gtasks"
	"github.com/teemow/asanasync/internal/instrumentation"
	"github.com/teemow/asanasync/internal/logging"
)

// Source is the Asana side of the sync: read tasks, flip completion.
type Source interface {
	ListTasks(ctx context.Context) (asana.ListResult, error)
	CompleteTask(ctx context.Context, gid string) error
}

// Mirror is the Google Tasks side: read, create and delete mirror tasks.
// Mirror tasks are never updated in place.
type Mirror interface {
	ListTasks(ctx context.Context) (gtasks.ListResult, error)
	CreateFromAsana(ctx context.Context, t asana.Task) error
	DeleteTask(ctx context.Context, id string) error
}

// Stats counts the mutating actions issued during one cycle.
type Stats struct {
	Created   int // new mirror tasks
	Replaced  int // stale mirrors deleted and recreated
	Completed int // asana tasks marked complete
	Deleted   int // mirror tasks deleted (cleanup and replacements excluded)
}

// Zero reports whether the cycle was a no-op.
func (s Stats) Zero() bool {
	return s == Stats{}
}

// Reconciler computes and applies the corrective actions that bring the
// mirror list in line with Asana.
type Reconciler struct {
	source  Source
	mirror  Mirror
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	tracer  trace.Tracer
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) { r.logger = logger }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *instrumentation.Metrics) ReconcilerOption {
	return func(r *Reconciler) { r.metrics = m }
}

// WithTracer sets the tracer for per-cycle spans.
func WithTracer(tracer trace.Tracer) ReconcilerOption {
	return func(r *Reconciler) { r.tracer = tracer }
}

// NewReconciler creates a reconciler over the two remote collaborators.
func NewReconciler(source Source, mirror Mirror, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		source: source,
		mirror: mirror,
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer("reconcile"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// snapshot is the pair of remote states one cycle operates on. It is never
// mutated after capture.
type snapshot struct {
	source asana.ListResult
	mirror gtasks.ListResult
}

// RunCycle captures both snapshots concurrently, then runs the three passes
// sequentially. The first remote error aborts the cycle.
func (r *Reconciler) RunCycle(ctx context.Context) (Stats, error) {
	ctx, span := r.tracer.Start(ctx, "sync.cycle")
	defer span.End()

	snap, err := r.fetchSnapshot(ctx)
	if err != nil {
		span.RecordError(err)
		return Stats{}, err
	}

	var stats Stats
	err = r.runPasses(ctx, snap, &stats)

	span.SetAttributes(
		attribute.Int("sync.created", stats.Created),
		attribute.Int("sync.replaced", stats.Replaced),
		attribute.Int("sync.completed", stats.Completed),
		attribute.Int("sync.deleted", stats.Deleted),
	)
	if err != nil {
		span.RecordError(err)
	}
	return stats, err
}

func (r *Reconciler) fetchSnapshot(ctx context.Context) (snapshot, error) {
	var snap snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		result, err := r.source.ListTasks(ctx)
		r.metrics.RecordRemoteOperation(ctx, "asana", "list", err, time.Since(start))
		if err != nil {
			return fmt.Errorf("failed to snapshot asana tasks: %w", err)
		}
		r.logger.Debug("captured snapshot",
			logging.Service("asana"),
			slog.Int("incomplete", len(result.Incomplete)),
			slog.Int("complete", len(result.Complete)))
		snap.source = result
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		result, err := r.mirror.ListTasks(ctx)
		r.metrics.RecordRemoteOperation(ctx, "gtasks", "list", err, time.Since(start))
		if err != nil {
			return fmt.Errorf("failed to snapshot mirror tasks: %w", err)
		}
		r.logger.Debug("captured snapshot",
			logging.Service("gtasks"),
			slog.Int("incomplete", len(result.Incomplete)),
			slog.Int("complete", len(result.Complete)))
		snap.mirror = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

func (r *Reconciler) runPasses(ctx context.Context, snap snapshot, stats *Stats) error {
	if err := r.propagateForward(ctx, snap, stats); err != nil {
		return err
	}
	if err := r.propagateCompletionsBackward(ctx, snap, stats); err != nil {
		return err
	}
	return r.propagateCompletionsForward(ctx, snap, stats)
}

// propagateForward is pass 1: every incomplete Asana task must have an
// equivalent mirror. Missing mirrors are created; stale ones are replaced.
func (r *Reconciler) propagateForward(ctx context.Context, snap snapshot, stats *Stats) error {
	for _, at := range snap.source.Incomplete {
		match, found := findByCorrelation(snap.mirror, at.GID)
		if !found {
			r.logger.Info("creating mirror task",
				logging.Operation("create"),
				slog.String("asana_gid", at.GID),
				slog.String("title", at.Name))
			if err := r.createMirror(ctx, at); err != nil {
				return err
			}
			stats.Created++
			r.metrics.RecordAction(ctx, "create")
			continue
		}

		eq, err := equivalent(match, at)
		if err != nil {
			return err
		}
		if eq {
			continue
		}

		// Match -> Stale -> Replace. The mirror id churns and any edits
		// made directly on the mirror are lost.
		r.logger.Info("replacing stale mirror task",
			logging.Operation("replace"),
			slog.String("asana_gid", at.GID),
			slog.String("mirror_id", match.ID),
			slog.String("title", at.Name))
		if err := r.deleteMirror(ctx, match.ID); err != nil {
			return err
		}
		if err := r.createMirror(ctx, at); err != nil {
			return err
		}
		stats.Replaced++
		r.metrics.RecordAction(ctx, "replace")
	}
	return nil
}

// propagateCompletionsBackward is pass 2: completed mirrors complete their
// Asana task, then are deleted. Deletion happens regardless of whether a
// correlation id was found; completion must come first so the correlation is
// not lost.
func (r *Reconciler) propagateCompletionsBackward(ctx context.Context, snap snapshot, stats *Stats) error {
	for _, mt := range snap.mirror.Complete {
		if gid, ok := correlate.Decode(mt.Notes); ok {
			r.logger.Info("mirror task complete, completing in asana",
				logging.Operation("complete"),
				slog.String("asana_gid", gid),
				slog.String("mirror_id", mt.ID))
			start := time.Now()
			err := r.source.CompleteTask(ctx, gid)
			r.metrics.RecordRemoteOperation(ctx, "asana", "complete", err, time.Since(start))
			if err != nil {
				return err
			}
			stats.Completed++
			r.metrics.RecordAction(ctx, "complete")
		}

		if err := r.deleteMirror(ctx, mt.ID); err != nil {
			return err
		}
		stats.Deleted++
		r.metrics.RecordAction(ctx, "delete")
	}
	return nil
}

// propagateCompletionsForward is pass 3: delete mirrors of Asana tasks that
// completed after pass 1's snapshot but were never completed on the mirror
// side. Usually a no-op; pass 2 cleans up first in the common case.
func (r *Reconciler) propagateCompletionsForward(ctx context.Context, snap snapshot, stats *Stats) error {
	for _, at := range snap.source.Complete {
		for _, mt := range snap.mirror.Incomplete {
			gid, ok := correlate.Decode(mt.Notes)
			if !ok || gid != at.GID {
				continue
			}
			r.logger.Info("asana task complete, deleting mirror task",
				logging.Operation("delete"),
				slog.String("asana_gid", at.GID),
				slog.String("mirror_id", mt.ID))
			if err := r.deleteMirror(ctx, mt.ID); err != nil {
				return err
			}
			stats.Deleted++
			r.metrics.RecordAction(ctx, "delete")
		}
	}
	return nil
}

// findByCorrelation searches incomplete then complete mirrors for the first
// one whose decoded correlation id matches gid. Duplicate correlation ids
// are not guarded against; first match in iteration order wins.
func findByCorrelation(mirror gtasks.ListResult, gid string) (gtasks.Task, bool) {
	for _, list := range [][]gtasks.Task{mirror.Incomplete, mirror.Complete} {
		for _, mt := range list {
			if decoded, ok := correlate.Decode(mt.Notes); ok && decoded == gid {
				return mt, true
			}
		}
	}
	return gtasks.Task{}, false
}

func (r *Reconciler) createMirror(ctx context.Context, at asana.Task) error {
	start := time.Now()
	err := r.mirror.CreateFromAsana(ctx, at)
	r.metrics.RecordRemoteOperation(ctx, "gtasks", "create", err, time.Since(start))
	return err
}

func (r *Reconciler) deleteMirror(ctx context.Context, id string) error {
	start := time.Now()
	err := r.mirror.DeleteTask(ctx, id)
	r.metrics.RecordRemoteOperation(ctx, "gtasks", "delete", err, time.Since(start))
	return err
}
