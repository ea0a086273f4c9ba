package ports

import (
	"context"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
)

// Service defines the adoption use cases exposed to adapters (inbound/driving port).
type Service interface {
	SubmitApplication(ctx context.Context, input adoptiontypes.SubmitApplicationInput) (*adoptiontypes.ApplicationProjection, error)
	TransitionApplication(ctx context.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, error)
	WithdrawApplication(ctx context.Context, input adoptiontypes.ApplicationIdentifier) (*adoptiontypes.ApplicationProjection, error)
	UpdateNotes(ctx context.Context, input adoptiontypes.UpdateNotesInput) (*adoptiontypes.ApplicationProjection, error)
	GetApplication(ctx context.Context, input adoptiontypes.ApplicationIdentifier) (*adoptiontypes.ApplicationProjection, error)
	ListApplications(ctx context.Context, input adoptiontypes.ListApplicationsInput) ([]*adoptiontypes.ApplicationProjection, error)
	PetAvailability(ctx context.Context, input adoptiontypes.PetIdentifier) (*adoptiontypes.PetAvailability, error)
	SyncPetListing(ctx context.Context, input adoptiontypes.PetIdentifier) (*adoptiontypes.PetAvailability, error)
	RecordInterest(ctx context.Context, input adoptiontypes.RecordInterestInput) (*adoptiontypes.InterestProjection, error)
	ListInterests(ctx context.Context, input adoptiontypes.ListInterestsInput) ([]*adoptiontypes.InterestProjection, error)
}
