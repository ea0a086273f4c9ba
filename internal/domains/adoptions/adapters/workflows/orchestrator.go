package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	adoptionapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	adoptionactivities "github.com/Apurer/pet-adoption-api/internal/durable/temporal/activities/adoptions"
	adoptionworkflows "github.com/Apurer/pet-adoption-api/internal/durable/temporal/workflows/adoptions"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalTransitionWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineTransitionWorkflows)(nil)
)

// TemporalTransitionWorkflows runs status transitions as Temporal workflows.
type TemporalTransitionWorkflows struct {
	client    client.Client
	taskQueue string
	timeout   time.Duration
}

// NewTemporalTransitionWorkflows wires a Temporal client into the orchestrator.
func NewTemporalTransitionWorkflows(c client.Client) *TemporalTransitionWorkflows {
	return &TemporalTransitionWorkflows{
		client:    c,
		taskQueue: adoptionworkflows.StatusTransitionTaskQueue,
		timeout:   2 * time.Minute,
	}
}

// TransitionApplication starts (or attaches to) the transition workflow and waits for its result.
func (o *TemporalTransitionWorkflows) TransitionApplication(ctx context.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal transition workflows not configured")
	}
	if _, ok := ctx.Deadline(); !ok && o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	workflowID := buildTransitionWorkflowID(input)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		adoptionworkflows.StatusTransitionWorkflowName,
		adoptionworkflows.StatusTransitionWorkflowInput{Command: input, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var projection adoptiontypes.ApplicationProjection
	if err := run.Get(ctx, &projection); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &projection, nil
}

// InlineTransitionWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineTransitionWorkflows struct {
	service ports.Service
}

// NewInlineTransitionWorkflows wraps the adoptions service for synchronous execution.
func NewInlineTransitionWorkflows(service ports.Service) *InlineTransitionWorkflows {
	return &InlineTransitionWorkflows{service: service}
}

// TransitionApplication delegates to the application service without durable orchestration.
func (o *InlineTransitionWorkflows) TransitionApplication(ctx context.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline transition workflows not configured")
	}
	return o.service.TransitionApplication(ctx, input)
}

func buildTransitionWorkflowID(input adoptiontypes.TransitionInput) string {
	status := strings.ToLower(strings.TrimSpace(input.Status))
	return fmt.Sprintf("adoption-transition-%s-%s", strings.TrimSpace(input.ApplicationID), status)
}

// translateWorkflowError turns non-retryable activity failures back into the errors the
// application service would have returned, so the HTTP layer maps both paths the same way.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case adoptionactivities.ErrTypeInvalidTransition:
		var details adoptionactivities.InvalidTransitionDetails
		if detailErr := appErr.Details(&details); detailErr != nil {
			return fmt.Errorf("%w: %s", domain.ErrInvalidTransition, appErr.Message())
		}
		return &domain.InvalidTransitionError{From: details.From, To: details.To, Allowed: details.Allowed}
	case adoptionactivities.ErrTypeNotFound:
		return ports.ErrNotFound
	case adoptionactivities.ErrTypeInvalidInput:
		return fmt.Errorf("%w: %s", adoptionapp.ErrInvalidInput, appErr.Message())
	case adoptionactivities.ErrTypePetUnavailable:
		return fmt.Errorf("%w: %s", adoptionapp.ErrPetUnavailable, appErr.Message())
	case adoptionactivities.ErrTypeConcurrentUpdate:
		return fmt.Errorf("%w: %s", adoptionapp.ErrConcurrentUpdate, appErr.Message())
	default:
		return err
	}
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
