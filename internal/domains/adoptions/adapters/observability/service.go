package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
)

// Service decorates the adoptions application port with tracing, logging, and metrics.
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

// WithMeter injects the meter used to create the adoption counters.
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

// SubmitApplication opens an application with instrumentation.
func (s *Service) SubmitApplication(ctx context.Context, input adoptiontypes.SubmitApplicationInput) (*adoptiontypes.ApplicationProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.SubmitApplication",
		attribute.String("user.id", input.UserID),
		attribute.Int64("pet.id", input.PetID),
		attribute.Bool("idempotency.key_present", input.IdempotencyKey != ""),
	)
	defer span.End()

	s.telemetry.Info(ctx, "submitting adoption application", slog.String("user.id", input.UserID), slog.Int64("pet.id", input.PetID))
	result, err := s.inner.SubmitApplication(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, "submit", err)
		return nil, s.fail(ctx, span, err, "failed to submit adoption application",
			slog.String("user.id", input.UserID), slog.Int64("pet.id", input.PetID))
	}
	if result != nil && result.Entity != nil {
		span.SetAttributes(attribute.String("application.id", result.Entity.ID))
		s.metrics.recordSubmitted(ctx, result.Entity.Status)
		s.telemetry.Info(ctx, "adoption application submitted",
			slog.String("application.id", result.Entity.ID),
			slog.String("status", string(result.Entity.Status)))
	}
	return result, nil
}

// TransitionApplication moves an application along the flow.
func (s *Service) TransitionApplication(ctx context.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.TransitionApplication",
		attribute.String("application.id", input.ApplicationID),
		attribute.String("application.status.requested", input.Status),
	)
	defer span.End()

	s.telemetry.Info(ctx, "transitioning adoption application",
		slog.String("application.id", input.ApplicationID), slog.String("status.requested", input.Status))
	result, err := s.inner.TransitionApplication(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, "transition", err)
		return nil, s.fail(ctx, span, err, "failed to transition adoption application",
			slog.String("application.id", input.ApplicationID), slog.String("status.requested", input.Status))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordTransitioned(ctx, result.Entity.Status)
		s.telemetry.Info(ctx, "adoption application transitioned",
			slog.String("application.id", result.Entity.ID), slog.String("status", string(result.Entity.Status)))
	}
	return result, nil
}

// WithdrawApplication withdraws an application on the applicant's behalf.
func (s *Service) WithdrawApplication(ctx context.Context, input adoptiontypes.ApplicationIdentifier) (*adoptiontypes.ApplicationProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.WithdrawApplication", attribute.String("application.id", input.ID))
	defer span.End()

	s.telemetry.Info(ctx, "withdrawing adoption application", slog.String("application.id", input.ID))
	result, err := s.inner.WithdrawApplication(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, "withdraw", err)
		return nil, s.fail(ctx, span, err, "failed to withdraw adoption application", slog.String("application.id", input.ID))
	}
	s.metrics.recordTransitioned(ctx, domain.StatusWithdrawn)
	s.telemetry.Info(ctx, "adoption application withdrawn", slog.String("application.id", input.ID))
	return result, nil
}

// UpdateNotes replaces shelter and/or user notes.
func (s *Service) UpdateNotes(ctx context.Context, input adoptiontypes.UpdateNotesInput) (*adoptiontypes.ApplicationProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.UpdateNotes",
		attribute.String("application.id", input.ApplicationID),
		attribute.Bool("notes.shelter", input.ShelterNotes != nil),
		attribute.Bool("notes.user", input.UserNotes != nil),
	)
	defer span.End()

	s.telemetry.Info(ctx, "updating adoption application notes", slog.String("application.id", input.ApplicationID))
	result, err := s.inner.UpdateNotes(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to update adoption application notes", slog.String("application.id", input.ApplicationID))
	}
	return result, nil
}

// GetApplication loads a single application.
func (s *Service) GetApplication(ctx context.Context, input adoptiontypes.ApplicationIdentifier) (*adoptiontypes.ApplicationProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.GetApplication", attribute.String("application.id", input.ID))
	defer span.End()

	result, err := s.inner.GetApplication(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to load adoption application", slog.String("application.id", input.ID))
	}
	if result != nil && result.Entity != nil {
		span.SetAttributes(attribute.String("application.status", string(result.Entity.Status)))
	}
	return result, nil
}

// ListApplications lists applications by user and/or pet.
func (s *Service) ListApplications(ctx context.Context, input adoptiontypes.ListApplicationsInput) ([]*adoptiontypes.ApplicationProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.ListApplications",
		attribute.String("user.id", input.UserID),
		attribute.Int64("pet.id", input.PetID),
	)
	defer span.End()

	s.telemetry.Info(ctx, "listing adoption applications", slog.String("user.id", input.UserID), slog.Int64("pet.id", input.PetID))
	result, err := s.inner.ListApplications(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to list adoption applications")
	}
	span.SetAttributes(attribute.Int("application.result.count", len(result)))
	s.telemetry.Info(ctx, "listed adoption applications", slog.Int("count", len(result)))
	return result, nil
}

// PetAvailability reports whether the pet can take new applications.
func (s *Service) PetAvailability(ctx context.Context, input adoptiontypes.PetIdentifier) (*adoptiontypes.PetAvailability, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.PetAvailability", attribute.Int64("pet.id", input.PetID))
	defer span.End()

	result, err := s.inner.PetAvailability(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to compute pet availability", slog.Int64("pet.id", input.PetID))
	}
	if result != nil {
		span.SetAttributes(
			attribute.Bool("pet.available", result.Available),
			attribute.String("pet.listing_status", string(result.ListingStatus)),
		)
	}
	return result, nil
}

// SyncPetListing recomputes and writes the pet's catalog status.
func (s *Service) SyncPetListing(ctx context.Context, input adoptiontypes.PetIdentifier) (*adoptiontypes.PetAvailability, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.SyncPetListing", attribute.Int64("pet.id", input.PetID))
	defer span.End()

	result, err := s.inner.SyncPetListing(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to sync pet listing", slog.Int64("pet.id", input.PetID))
	}
	if result != nil {
		s.metrics.recordListingSynced(ctx, result.ListingStatus)
		s.telemetry.Info(ctx, "pet listing synced", slog.Int64("pet.id", input.PetID), slog.String("listing_status", string(result.ListingStatus)))
	}
	return result, nil
}

// RecordInterest stores a swipe.
func (s *Service) RecordInterest(ctx context.Context, input adoptiontypes.RecordInterestInput) (*adoptiontypes.InterestProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.RecordInterest",
		attribute.String("user.id", input.UserID),
		attribute.Int64("pet.id", input.PetID),
		attribute.String("interest.type", input.Type),
	)
	defer span.End()

	result, err := s.inner.RecordInterest(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to record interest",
			slog.String("user.id", input.UserID), slog.Int64("pet.id", input.PetID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordInterest(ctx, result.Entity.Type)
	}
	return result, nil
}

// ListInterests lists a user's swipes.
func (s *Service) ListInterests(ctx context.Context, input adoptiontypes.ListInterestsInput) ([]*adoptiontypes.InterestProjection, error) {
	ctx, span := s.telemetry.Start(ctx, "Service.ListInterests",
		attribute.String("user.id", input.UserID),
		attribute.Bool("interest.positive_only", input.PositiveOnly),
	)
	defer span.End()

	result, err := s.inner.ListInterests(ctx, input)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to list interests", slog.String("user.id", input.UserID))
	}
	span.SetAttributes(attribute.Int("interest.result.count", len(result)))
	return result, nil
}

// fail logs refused commands at warn and unexpected failures at error.
func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	level := slog.LevelWarn
	if rejectionReason(err) == "internal" {
		level = slog.LevelError
	}
	return s.telemetry.Fail(ctx, span, level, err, msg, attrs...)
}

type serviceMetrics struct {
	submitted     metric.Int64Counter
	transitioned  metric.Int64Counter
	rejected      metric.Int64Counter
	listingSynced metric.Int64Counter
	interests     metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	return serviceMetrics{
		submitted:     platformobservability.NewCounter(m, "adoptions.service.submitted", "Number of adoption applications submitted"),
		transitioned:  platformobservability.NewCounter(m, "adoptions.service.transitioned", "Number of accepted status transitions"),
		rejected:      platformobservability.NewCounter(m, "adoptions.service.rejected", "Number of refused adoption commands"),
		listingSynced: platformobservability.NewCounter(m, "adoptions.service.listing_synced", "Number of pet listing status writes"),
		interests:     platformobservability.NewCounter(m, "adoptions.service.interests", "Number of recorded swipes"),
	}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context, status domain.Status) {
	platformobservability.Inc(ctx, m.submitted, attribute.String("application.status", string(status)))
}

func (m serviceMetrics) recordTransitioned(ctx context.Context, status domain.Status) {
	platformobservability.Inc(ctx, m.transitioned, attribute.String("application.status", string(status)))
}

func (m serviceMetrics) recordRejected(ctx context.Context, operation string, err error) {
	platformobservability.Inc(ctx, m.rejected,
		attribute.String("operation", operation),
		attribute.String("reason", rejectionReason(err)),
	)
}

func (m serviceMetrics) recordListingSynced(ctx context.Context, status domain.ListingStatus) {
	platformobservability.Inc(ctx, m.listingSynced, attribute.String("pet.listing_status", string(status)))
}

func (m serviceMetrics) recordInterest(ctx context.Context, kind domain.InterestType) {
	platformobservability.Inc(ctx, m.interests, attribute.String("interest.type", string(kind)))
}

var _ ports.Service = (*Service)(nil)
