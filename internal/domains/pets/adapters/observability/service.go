package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
)

// Service decorates the pet catalog port with tracing, logging, and metrics.
type Service struct {
	inner     ports.Service
	telemetry platformobservability.ServiceTelemetry
	metrics   serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.telemetry.Logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.telemetry.Tracer = tr
	}
}

// WithMeter injects the meter used to create the catalog counters.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{inner: inner}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AddPet lists a new pet.
func (s *Service) AddPet(ctx context.Context, input pettypes.AddPetInput) (*pettypes.PetProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.AddPet")
	defer span.End()

	result, err := s.inner.AddPet(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to add pet")
	}
	span.SetAttributes(attribute.Int64("pet.id", result.Entity.ID))
	s.metrics.inc(ctx, s.metrics.created, result.Entity.Status)
	s.telemetry.Info(ctx, "pet added",
		slog.Int64("pet.id", result.Entity.ID),
		slog.String("pet.species", result.Entity.Species),
	)
	return result, nil
}

// UpdatePet applies a partial update.
func (s *Service) UpdatePet(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.UpdatePet", attribute.Int64("pet.id", input.ID))
	defer span.End()

	result, err := s.inner.UpdatePet(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to update pet", slog.Int64("pet.id", input.ID))
	}
	s.metrics.inc(ctx, s.metrics.updated, result.Entity.Status)
	s.telemetry.Info(ctx, "pet updated", slog.Int64("pet.id", input.ID))
	return result, nil
}

// UpdateStatus is how the adoptions context locks and releases listings.
func (s *Service) UpdateStatus(ctx context.Context, input pettypes.UpdatePetStatusInput) (*pettypes.PetProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.UpdateStatus",
		attribute.Int64("pet.id", input.ID),
		attribute.String("pet.status.requested", input.Status),
	)
	defer span.End()

	result, err := s.inner.UpdateStatus(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to update pet status",
			slog.Int64("pet.id", input.ID), slog.String("pet.status.requested", input.Status))
	}
	s.metrics.inc(ctx, s.metrics.statusChanged, result.Entity.Status)
	s.telemetry.Info(ctx, "pet status updated",
		slog.Int64("pet.id", input.ID), slog.String("pet.status", string(result.Entity.Status)))
	return result, nil
}

// FindByStatus searches pets matching any of the provided statuses.
func (s *Service) FindByStatus(ctx context.Context, input pettypes.FindPetsByStatusInput) ([]*pettypes.PetProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.FindByStatus", attribute.StringSlice("pet.statuses.requested", input.Statuses))
	defer span.End()

	result, err := s.inner.FindByStatus(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to find pets by status", slog.Any("statuses", input.Statuses))
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	return result, nil
}

// FindByTags searches pets matching any supplied tag name.
func (s *Service) FindByTags(ctx context.Context, input pettypes.FindPetsByTagsInput) ([]*pettypes.PetProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.FindByTags", attribute.StringSlice("pet.tags.requested", input.Tags))
	defer span.End()

	result, err := s.inner.FindByTags(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to find pets by tags", slog.Any("tags", input.Tags))
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	return result, nil
}

// GetByID loads a single pet.
func (s *Service) GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.GetByID", attribute.Int64("pet.id", input.ID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load pet", slog.Int64("pet.id", input.ID))
	}
	span.SetAttributes(attribute.String("pet.status", string(result.Entity.Status)))
	return result, nil
}

// Delete removes a pet.
func (s *Service) Delete(ctx context.Context, input pettypes.PetIdentifier) error {
	ctx, span := s.telemetry.Start(ctx, "Service.Delete", attribute.Int64("pet.id", input.ID))
	defer span.End()

	if err := s.inner.Delete(ctx, input); err != nil {
		return s.fail(ctx, span, err, "failed to delete pet", slog.Int64("pet.id", input.ID))
	}
	platformobservability.Inc(ctx, s.metrics.deleted)
	s.telemetry.Info(ctx, "pet deleted", slog.Int64("pet.id", input.ID))
	return nil
}

// List returns the whole catalog.
func (s *Service) List(ctx context.Context) ([]*pettypes.PetProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to list pets")
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result)))
	return result, nil
}

// fail logs caller mistakes at warn and everything else at error.
func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	level := slog.LevelError
	if errors.Is(err, ports.ErrNotFound) || errors.Is(err, petsapp.ErrInvalidInput) {
		level = slog.LevelWarn
	}
	return s.telemetry.Fail(ctx, span, level, err, msg, attrs...)
}

type serviceMetrics struct {
	created       metric.Int64Counter
	updated       metric.Int64Counter
	deleted       metric.Int64Counter
	statusChanged metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	return serviceMetrics{
		created:       platformobservability.NewCounter(m, "pets.service.created", "Number of pets listed"),
		updated:       platformobservability.NewCounter(m, "pets.service.updated", "Number of pet updates"),
		deleted:       platformobservability.NewCounter(m, "pets.service.deleted", "Number of pets removed from the catalog"),
		statusChanged: platformobservability.NewCounter(m, "pets.service.status_changed", "Number of listing status changes"),
	}
}

func (m serviceMetrics) inc(ctx context.Context, counter metric.Int64Counter, status domain.Status) {
	platformobservability.Inc(ctx, counter, attribute.String("pet.status", string(status)))
}

var _ ports.Service = (*Service)(nil)
