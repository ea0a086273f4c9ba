package observability

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	adoptionapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

type stubService struct {
	ports.Service
	transitionErr error
}

func (s stubService) TransitionApplication(_ context.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, error) {
	if s.transitionErr != nil {
		return nil, s.transitionErr
	}
	return &adoptiontypes.ApplicationProjection{Entity: &domain.Application{ID: input.ApplicationID, Status: domain.Status(input.Status)}}, nil
}

func TestTransitionApplicationRecordsSpanAndLogs(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	svc := New(stubService{}, WithTracer(provider.Tracer("test")), WithLogger(logger))
	result, err := svc.TransitionApplication(context.Background(), adoptiontypes.TransitionInput{ApplicationID: "app-1", Status: "under_review"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnderReview, result.Entity.Status)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "Service.TransitionApplication", spans[0].Name())
	assert.Contains(t, logs.String(), "adoption application transitioned")
}

func TestTransitionApplicationErrorMarksSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	failure := &domain.InvalidTransitionError{From: domain.StatusBrowsing, To: domain.StatusAdopted}
	svc := New(stubService{transitionErr: failure}, WithTracer(provider.Tracer("test")))
	_, err := svc.TransitionApplication(context.Background(), adoptiontypes.TransitionInput{ApplicationID: "app-1", Status: "adopted"})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "Error", spans[0].Status().Code.String())
}

func TestRejectionReason(t *testing.T) {
	cases := map[string]error{
		"invalid_transition":    &domain.InvalidTransitionError{From: domain.StatusAdopted, To: domain.StatusBrowsing},
		"duplicate_application": fmt.Errorf("%w: %w", adoptionapp.ErrDuplicateApplication, ports.ErrActiveApplicationExists),
		"pet_unavailable":       adoptionapp.ErrPetUnavailable,
		"concurrent_update":     adoptionapp.ErrConcurrentUpdate,
		"invalid_input":         fmt.Errorf("%w: %w", adoptionapp.ErrInvalidInput, domain.ErrEmptyPhone),
		"idempotency_conflict":  ports.ErrIdempotencyConflict,
		"not_found":             ports.ErrNotFound,
		"internal":              errors.New("boom"),
	}
	for want, err := range cases {
		assert.Equal(t, want, rejectionReason(err), err.Error())
	}
}
