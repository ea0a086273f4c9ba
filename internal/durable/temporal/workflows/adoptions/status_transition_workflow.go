package adoptions

import (
	"go.temporal.io/sdk/workflow"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/durable/temporal/sequences"
)

const (
	// StatusTransitionWorkflowName is the public identifier for registering the workflow.
	StatusTransitionWorkflowName = "adoptions.workflows.StatusTransition"
	// StatusTransitionTaskQueue is the queue consumed by the worker processing adoption workflows.
	StatusTransitionTaskQueue = "ADOPTION_TRANSITIONS"
)

// StatusTransitionWorkflowInput captures the transition request.
type StatusTransitionWorkflowInput struct {
	Command adoptiontypes.TransitionInput
	TraceID string
}

// StatusTransitionWorkflow moves one application to the requested status.
func StatusTransitionWorkflow(ctx workflow.Context, input StatusTransitionWorkflowInput) (*adoptiontypes.ApplicationProjection, error) {
	logger := workflow.GetLogger(ctx)
	appID := input.Command.ApplicationID
	logger.Info("StatusTransitionWorkflow started", withTraceID(input.TraceID, "applicationId", appID, "status", input.Command.Status)...)
	projection, err := sequences.RunStatusTransitionSequence(ctx, input.Command)
	if err != nil {
		logger.Error("StatusTransitionWorkflow failed", withTraceID(input.TraceID, "applicationId", appID, "error", err)...)
		return nil, err
	}
	logger.Info("StatusTransitionWorkflow completed", withTraceID(input.TraceID, "applicationId", appID)...)
	return projection, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
