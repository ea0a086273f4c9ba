package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
)

func TestBuildFallsBackToMemory(t *testing.T) {
	svc, cleanup, err := Build(context.Background(), Options{}, nil)
	require.NoError(t, err)
	defer cleanup()
	assert.False(t, svc.Persistent)

	ctx := context.Background()
	name, species := "Olive", "dog"
	pet, err := svc.Pets.AddPet(ctx, petstypes.AddPetInput{PetMutationInput: petstypes.PetMutationInput{Name: &name, Species: &species}})
	require.NoError(t, err)

	availability, err := svc.Adoptions.PetAvailability(ctx, adoptiontypes.PetIdentifier{PetID: pet.Entity.ID})
	require.NoError(t, err)
	assert.True(t, availability.Available)

	_, err = svc.Adoptions.PetAvailability(ctx, adoptiontypes.PetIdentifier{PetID: pet.Entity.ID + 1})
	assert.Error(t, err)
}

func TestBuildRequiresPostgresWhenAsked(t *testing.T) {
	_, _, err := Build(context.Background(), Options{RequirePostgres: true}, nil)
	assert.ErrorIs(t, err, errPostgresRequired)
}
