package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// ServiceTelemetry is the span and log plumbing shared by the application service decorators.
// The zero value is usable and records nothing.
type ServiceTelemetry struct {
	Tracer trace.Tracer
	Logger *slog.Logger
}

// Start opens a span named after the decorated operation.
func (t ServiceTelemetry) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := t.Tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer("")
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Info logs a successful step.
func (t ServiceTelemetry) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	if t.Logger != nil {
		t.Logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
	}
}

// Fail marks span as failed, logs err at level and returns it unchanged.
func (t ServiceTelemetry) Fail(ctx context.Context, span trace.Span, level slog.Level, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if t.Logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		t.Logger.LogAttrs(ctx, level, msg, attrs...)
	}
	return err
}

// NewCounter creates an Int64Counter, or nil when m is nil or rejects the instrument.
func NewCounter(m metric.Meter, name, description string) metric.Int64Counter {
	if m == nil {
		return nil
	}
	counter, err := m.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return nil
	}
	return counter
}

// Inc adds one to counter; nil counters are ignored.
func Inc(ctx context.Context, counter metric.Int64Counter, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}
