package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrResult    = "result"
	attrAction    = "action"
	attrService   = "service"
	attrOperation = "operation"
)

// Result values.
const (
	resultSuccess = "success"
	resultError   = "error"
)

// Metrics provides methods for recording sync observability metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	syncCyclesTotal   metric.Int64Counter
	syncCycleDuration metric.Float64Histogram
	syncActionsTotal  metric.Int64Counter
	remoteOpsTotal    metric.Int64Counter
	remoteOpDuration  metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.syncCyclesTotal, err = meter.Int64Counter(
		"sync_cycles_total",
		metric.WithDescription("Total number of sync cycles run"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync_cycles_total counter: %w", err)
	}

	m.syncCycleDuration, err = meter.Float64Histogram(
		"sync_cycle_duration_seconds",
		metric.WithDescription("Sync cycle duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync_cycle_duration_seconds histogram: %w", err)
	}

	m.syncActionsTotal, err = meter.Int64Counter(
		"sync_actions_total",
		metric.WithDescription("Total number of mutating sync actions by kind"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync_actions_total counter: %w", err)
	}

	m.remoteOpsTotal, err = meter.Int64Counter(
		"remote_operations_total",
		metric.WithDescription("Total number of remote API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote_operations_total counter: %w", err)
	}

	m.remoteOpDuration, err = meter.Float64Histogram(
		"remote_operation_duration_seconds",
		metric.WithDescription("Remote API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote_operation_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordCycle records the outcome and duration of one sync cycle.
func (m *Metrics) RecordCycle(ctx context.Context, err error, duration time.Duration) {
	if m == nil || m.syncCyclesTotal == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrResult, resultLabel(err)))
	m.syncCyclesTotal.Add(ctx, 1, attrs)
	m.syncCycleDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordAction records one mutating sync action
// (create, replace, complete, delete).
func (m *Metrics) RecordAction(ctx context.Context, action string) {
	if m == nil || m.syncActionsTotal == nil {
		return
	}

	m.syncActionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrAction, action)))
}

// RecordRemoteOperation records one remote API call against either service.
func (m *Metrics) RecordRemoteOperation(ctx context.Context, service, operation string, err error, duration time.Duration) {
	if m == nil || m.remoteOpsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrResult, resultLabel(err)),
	)
	m.remoteOpsTotal.Add(ctx, 1, attrs)
	m.remoteOpDuration.Record(ctx, duration.Seconds(), attrs)
}

func resultLabel(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}
