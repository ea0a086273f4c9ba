package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
)

// ErrPetNotFound is returned by PetCatalog when the pet id is unknown.
var ErrPetNotFound = errors.New("pet not found in catalog")

// PetCatalog is the outbound port to the pet listings.
type PetCatalog interface {
	Exists(ctx context.Context, petID int64) (bool, error)
	SetListingStatus(ctx context.Context, petID int64, status domain.ListingStatus) error
}

// EventPublisher hands recorded domain events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}
