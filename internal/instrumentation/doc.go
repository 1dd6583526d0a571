// Package instrumentation provides OpenTelemetry-based observability for the
// sync daemon.
//
// # Metrics
//
// The Provider initializes an OpenTelemetry meter provider with a
// configurable exporter (Prometheus by default, OTLP or stdout for
// development). Domain metrics cover sync cycles, cycle duration, sync
// actions by kind, and individual remote API operations.
//
// The Metrics recorder is nil-safe: a nil recorder, or one created while
// instrumentation is disabled, turns every Record call into a no-op so
// callers never need to guard.
//
// # Tracing
//
// Tracing is disabled by default. When enabled (OTLP or stdout exporter),
// each sync cycle becomes a span carrying the action counts.
//
// # Configuration
//
// Configuration comes from environment variables (OTEL_SERVICE_NAME,
// METRICS_EXPORTER, TRACING_EXPORTER, OTEL_EXPORTER_OTLP_ENDPOINT, ...);
// see DefaultConfig.
package instrumentation
