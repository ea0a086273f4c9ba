// Package events delivers domain events recorded by the bounded contexts.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Event is satisfied by the domain event interfaces of every bounded context.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// LogPublisher writes each event as a structured log line and counts it.
type LogPublisher[E Event] struct {
	logger  *slog.Logger
	counter metric.Int64Counter
}

// NewLogPublisher builds a publisher; a nil meter disables counting.
func NewLogPublisher[E Event](logger *slog.Logger, meter metric.Meter) *LogPublisher[E] {
	if logger == nil {
		logger = slog.Default()
	}
	p := &LogPublisher[E]{logger: logger}
	if meter != nil {
		if counter, err := meter.Int64Counter("domain.events.published"); err == nil {
			p.counter = counter
		}
	}
	return p
}

// Publish never fails; delivery is best effort.
func (p *LogPublisher[E]) Publish(ctx context.Context, events ...E) error {
	for _, event := range events {
		p.logger.LogAttrs(ctx, slog.LevelInfo, "domain event",
			slog.String("event.name", event.EventName()),
			slog.Time("event.occurred_at", event.OccurredAt()),
			slog.Any("event.payload", event),
		)
		if p.counter != nil {
			p.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("event.name", event.EventName())))
		}
	}
	return nil
}

// Recorder keeps published events in memory.
type Recorder[E Event] struct {
	mu     sync.RWMutex
	events []E
}

// NewRecorder returns an empty recorder.
func NewRecorder[E Event]() *Recorder[E] {
	return &Recorder[E]{}
}

// Publish appends the events.
func (r *Recorder[E]) Publish(_ context.Context, events ...E) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder[E]) Events() []E {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]E(nil), r.events...)
}

// Names lists the event names in publish order.
func (r *Recorder[E]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.events))
	for _, event := range r.events {
		names = append(names, event.EventName())
	}
	return names
}
