package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type (
	// OtelMetrics records counters, timers, and gauges against the global
	// OTEL MeterProvider. Configure the provider (otel.SetMeterProvider)
	// before constructing this, typically via an OTLP exporter setup in the
	// owning process's main.
	OtelMetrics struct {
		meter    metric.Meter
		counters map[string]metric.Float64Counter
		gauges   map[string]metric.Float64Gauge
	}

	// OtelTracer starts spans against the global OTEL TracerProvider.
	OtelTracer struct {
		tracer trace.Tracer
	}

	otelSpan struct {
		span trace.Span
	}
)

// NewOtelMetrics constructs a Metrics recorder backed by the global OTEL
// MeterProvider, scoped under the given instrumentation name.
func NewOtelMetrics(instrumentationName string) *OtelMetrics {
	return &OtelMetrics{
		meter:    otel.Meter(instrumentationName),
		counters: make(map[string]metric.Float64Counter),
		gauges:   make(map[string]metric.Float64Gauge),
	}
}

// NewOtelTracer constructs a Tracer backed by the global OTEL TracerProvider,
// scoped under the given instrumentation name.
func NewOtelTracer(instrumentationName string) *OtelTracer {
	return &OtelTracer{tracer: otel.Tracer(instrumentationName)}
}

// IncCounter increments (or creates, on first use) a named float64 counter.
func (m *OtelMetrics) IncCounter(name string, value float64, labels ...string) {
	c, ok := m.counters[name]
	if !ok {
		var err error
		c, err = m.meter.Float64Counter(name)
		if err != nil {
			return
		}
		m.counters[name] = c
	}
	c.Add(context.Background(), value, metric.WithAttributes(attrsFromPairs(labels)...))
}

// RecordTimer records a duration as a gauge in milliseconds under
// "<name>.duration_ms".
func (m *OtelMetrics) RecordTimer(name string, d time.Duration, labels ...string) {
	m.RecordGauge(name+".duration_ms", float64(d.Milliseconds()), labels...)
}

// RecordGauge records (or creates, on first use) a named float64 gauge.
func (m *OtelMetrics) RecordGauge(name string, value float64, labels ...string) {
	g, ok := m.gauges[name]
	if !ok {
		var err error
		g, err = m.meter.Float64Gauge(name)
		if err != nil {
			return
		}
		m.gauges[name] = g
	}
	g.Record(context.Background(), value, metric.WithAttributes(attrsFromPairs(labels)...))
}

// Start begins a new span under the configured tracer.
func (t *OtelTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name, opts...)
	return ctx, otelSpan{span: span}
}

func (s otelSpan) End(opts ...trace.SpanEndOption) { s.span.End(opts...) }

func (s otelSpan) AddEvent(name string, keyvals ...any) {
	attrs := make([]attribute.KeyValue, 0, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, attribute.String(key, toString(keyvals[i+1])))
	}
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

func (s otelSpan) SetStatus(code codes.Code, description string) { s.span.SetStatus(code, description) }
func (s otelSpan) RecordError(err error, opts ...trace.EventOption) { s.span.RecordError(err, opts...) }

func attrsFromPairs(pairs []string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, attribute.String(pairs[i], pairs[i+1]))
	}
	return attrs
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
