package petcatalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	petsmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
)

func newCatalog(t *testing.T) (*Catalog, *petsapp.Service, int64) {
	t.Helper()
	pets := petsapp.NewService(petsmemory.NewRepository())
	name, species := "Rex", "dog"
	saved, err := pets.AddPet(context.Background(), petstypes.AddPetInput{
		PetMutationInput: petstypes.PetMutationInput{Name: &name, Species: &species},
	})
	require.NoError(t, err)
	return New(pets), pets, saved.Entity.ID
}

func TestExists(t *testing.T) {
	catalog, _, id := newCatalog(t)
	ctx := context.Background()

	ok, err := catalog.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = catalog.Exists(ctx, id+100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetListingStatusUpdatesPet(t *testing.T) {
	catalog, pets, id := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, catalog.SetListingStatus(ctx, id, domain.ListingPending))

	pet, err := pets.GetByID(ctx, petstypes.PetIdentifier{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "pending", string(pet.Entity.Status))
}

func TestSetListingStatusUnknownPet(t *testing.T) {
	catalog, _, id := newCatalog(t)

	err := catalog.SetListingStatus(context.Background(), id+1, domain.ListingAdopted)
	assert.ErrorIs(t, err, ports.ErrPetNotFound)
}
