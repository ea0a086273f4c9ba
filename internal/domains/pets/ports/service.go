package ports

import (
	"context"

	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
type Service interface {
	AddPet(ctx context.Context, input pettypes.AddPetInput) (*pettypes.PetProjection, error)
	UpdatePet(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error)
	UpdateStatus(ctx context.Context, input pettypes.UpdatePetStatusInput) (*pettypes.PetProjection, error)
	FindByStatus(ctx context.Context, input pettypes.FindPetsByStatusInput) ([]*pettypes.PetProjection, error)
	FindByTags(ctx context.Context, input pettypes.FindPetsByTagsInput) ([]*pettypes.PetProjection, error)
	GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
	Delete(ctx context.Context, input pettypes.PetIdentifier) error
	List(ctx context.Context) ([]*pettypes.PetProjection, error)
}
