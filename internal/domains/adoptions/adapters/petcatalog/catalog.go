package petcatalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

var _ ports.PetCatalog = (*Catalog)(nil)

// Catalog answers adoption questions about pets through the pets service.
type Catalog struct {
	pets petsports.Service
}

// New wraps the pets service as the adoptions pet catalog.
func New(pets petsports.Service) *Catalog {
	return &Catalog{pets: pets}
}

// Exists reports whether the pet is listed.
func (c *Catalog) Exists(ctx context.Context, petID int64) (bool, error) {
	_, err := c.pets.GetByID(ctx, petstypes.PetIdentifier{ID: petID})
	if err != nil {
		if errors.Is(err, petsports.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SetListingStatus writes the derived listing status to the pet.
func (c *Catalog) SetListingStatus(ctx context.Context, petID int64, status domain.ListingStatus) error {
	_, err := c.pets.UpdateStatus(ctx, petstypes.UpdatePetStatusInput{ID: petID, Status: string(status)})
	if err != nil {
		if errors.Is(err, petsports.ErrNotFound) {
			return fmt.Errorf("%w: %d", ports.ErrPetNotFound, petID)
		}
		return err
	}
	return nil
}
