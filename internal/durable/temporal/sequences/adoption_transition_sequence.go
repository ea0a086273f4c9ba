package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	adoptionactivities "github.com/Apurer/pet-adoption-api/internal/durable/temporal/activities/adoptions"
)

// RunStatusTransitionSequence executes the activity that applies a status transition.
func RunStatusTransitionSequence(ctx workflow.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("status transition sequence started", "applicationId", input.ApplicationID, "status", input.Status)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: adoptionactivities.NonRetryableErrorTypes,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var projection adoptiontypes.ApplicationProjection
	err := workflow.ExecuteActivity(ctx, adoptionactivities.TransitionApplicationActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("status transition sequence failed", "applicationId", input.ApplicationID, "error", err)
		return nil, err
	}
	logger.Info("status transition sequence completed", "applicationId", input.ApplicationID, "status", input.Status)
	return &projection, nil
}
