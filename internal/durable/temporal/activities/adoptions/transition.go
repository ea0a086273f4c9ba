package adoptions

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	adoptionapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

const (
	// TransitionApplicationActivityName applies one status transition to a stored application.
	TransitionApplicationActivityName = "adoptions.activities.TransitionApplication"

	// ErrTypeInvalidTransition marks a transition refused by the status model.
	ErrTypeInvalidTransition = "InvalidTransition"
	// ErrTypeNotFound marks an unknown application id.
	ErrTypeNotFound = "ApplicationNotFound"
	// ErrTypeInvalidInput marks a request that failed validation.
	ErrTypeInvalidInput = "InvalidInput"
	// ErrTypePetUnavailable marks a move into a locking status while another application holds the pet.
	ErrTypePetUnavailable = "PetUnavailable"
	// ErrTypeConcurrentUpdate marks a write that lost against a concurrent change to the application.
	ErrTypeConcurrentUpdate = "ConcurrentUpdate"
)

// NonRetryableErrorTypes lists the application error types that retrying cannot fix.
var NonRetryableErrorTypes = []string{
	ErrTypeInvalidTransition,
	ErrTypeNotFound,
	ErrTypeInvalidInput,
	ErrTypePetUnavailable,
	ErrTypeConcurrentUpdate,
}

// InvalidTransitionDetails travels as the error details of an ErrTypeInvalidTransition failure.
type InvalidTransitionDetails struct {
	From    domain.Status
	To      domain.Status
	Allowed []domain.Status
}

// Activities groups activities that operate on the adoptions bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the adoptions service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// TransitionApplication runs the transition through the application service.
func (a *Activities) TransitionApplication(ctx context.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("transition activity not initialized", "applicationId", input.ApplicationID)
		return nil, errors.New("transition activity not initialized")
	}
	attempt := activity.GetInfo(ctx).Attempt
	logger.Info("TransitionApplication activity started", "applicationId", input.ApplicationID, "status", input.Status, "attempt", attempt)
	if attempt > 1 {
		if projection, done := a.alreadyApplied(ctx, input); done {
			logger.Info("TransitionApplication already applied by an earlier attempt", "applicationId", input.ApplicationID, "status", input.Status)
			return projection, nil
		}
	}
	projection, err := a.service.TransitionApplication(ctx, input)
	if err != nil {
		logger.Error("TransitionApplication activity failed", "applicationId", input.ApplicationID, "error", err)
		return nil, classify(err)
	}
	logger.Info("TransitionApplication activity completed", "applicationId", input.ApplicationID, "status", input.Status)
	return projection, nil
}

// alreadyApplied reports whether an earlier attempt committed the transition before failing,
// and if so re-syncs the pet listing that attempt may have skipped.
func (a *Activities) alreadyApplied(ctx context.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, bool) {
	requested, ok := domain.ParseStatus(input.Status)
	if !ok {
		return nil, false
	}
	current, err := a.service.GetApplication(ctx, adoptiontypes.ApplicationIdentifier{ID: input.ApplicationID})
	if err != nil || current.Entity.Status != requested {
		return nil, false
	}
	if _, err := a.service.SyncPetListing(ctx, adoptiontypes.PetIdentifier{PetID: current.Entity.PetID}); err != nil {
		activity.GetLogger(ctx).Warn("listing sync after replayed transition failed", "petId", current.Entity.PetID, "error", err)
	}
	return current, true
}

func classify(err error) error {
	var invalid *domain.InvalidTransitionError
	switch {
	case errors.As(err, &invalid):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidTransition, err,
			InvalidTransitionDetails{From: invalid.From, To: invalid.To, Allowed: invalid.Allowed})
	case errors.Is(err, ports.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeNotFound, err)
	case errors.Is(err, adoptionapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
	case errors.Is(err, adoptionapp.ErrPetUnavailable):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypePetUnavailable, err)
	case errors.Is(err, adoptionapp.ErrConcurrentUpdate):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeConcurrentUpdate, err)
	default:
		return err
	}
}
