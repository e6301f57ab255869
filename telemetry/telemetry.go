// Package telemetry defines the ambient logging, metrics, and tracing
// interfaces consumed throughout agentcore. Components accept these
// interfaces rather than concrete backends so callers can swap in noop,
// OpenTelemetry-backed, or application-specific implementations without
// touching runtime logic.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type (
	// Logger emits structured log messages keyed by alternating key/value
	// pairs, following the slog-style convention used across the codebase.
	Logger interface {
		Debug(ctx context.Context, msg string, keyvals ...any)
		Info(ctx context.Context, msg string, keyvals ...any)
		Warn(ctx context.Context, msg string, keyvals ...any)
		Error(ctx context.Context, msg string, keyvals ...any)
	}

	// Metrics records counters, timers, and gauges. Label pairs are passed
	// as trailing string arguments (key, value, key, value, ...).
	Metrics interface {
		IncCounter(name string, value float64, labels ...string)
		RecordTimer(name string, d time.Duration, labels ...string)
		RecordGauge(name string, value float64, labels ...string)
	}

	// Tracer starts spans for a unit of work. Start returns a context carrying
	// the new span so downstream calls can attach further events to it.
	Tracer interface {
		Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span)
	}

	// Span is a single unit of traced work.
	Span interface {
		End(opts ...trace.SpanEndOption)
		AddEvent(name string, keyvals ...any)
		SetStatus(code codes.Code, description string)
		RecordError(err error, opts ...trace.EventOption)
	}
)
