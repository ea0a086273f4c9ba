package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	petmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/platform/events"
)

func addInput(name, species string) pettypes.AddPetInput {
	return pettypes.AddPetInput{
		PetMutationInput: pettypes.PetMutationInput{Name: &name, Species: &species},
	}
}

func TestAddPet_Success(t *testing.T) {
	repo := petmemory.NewRepository()
	publisher := events.NewRecorder[domain.Event]()
	svc := NewService(repo, WithEventPublisher(publisher))

	proj, err := svc.AddPet(context.Background(), addInput("Rex", "Dog"))

	require.NoError(t, err)
	require.NotNil(t, proj)
	require.Equal(t, int64(1), proj.Entity.ID)
	require.Equal(t, "Rex", proj.Entity.Name)
	require.Equal(t, "dog", proj.Entity.Species)
	require.Equal(t, domain.StatusAvailable, proj.Entity.Status)
	require.False(t, proj.Metadata.CreatedAt.IsZero())
	require.Equal(t, []string{"pets.pet.created"}, publisher.Names())
}

func TestAddPet_InvalidInput(t *testing.T) {
	svc := NewService(petmemory.NewRepository())

	_, err := svc.AddPet(context.Background(), pettypes.AddPetInput{})
	require.ErrorIs(t, err, ErrInvalidInput)

	input := addInput("Rex", "dog")
	status := "sold"
	input.Status = &status
	_, err = svc.AddPet(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdatePet_UpdatesMetadata(t *testing.T) {
	repo := petmemory.NewRepository()
	repo.WithClock(time.Now)
	svc := NewService(repo)

	proj, err := svc.AddPet(context.Background(), addInput("Rex", "dog"))
	require.NoError(t, err)

	updatedName := "Rexy"
	age := 14
	updated, err := svc.UpdatePet(context.Background(), pettypes.UpdatePetInput{
		PetMutationInput: pettypes.PetMutationInput{
			ID:        proj.Entity.ID,
			Name:      &updatedName,
			AgeMonths: &age,
		},
	})
	require.NoError(t, err)
	require.Equal(t, updatedName, updated.Entity.Name)
	require.Equal(t, 14, updated.Entity.AgeMonths)
	require.Equal(t, "dog", updated.Entity.Species)
	require.Equal(t, proj.Metadata.CreatedAt, updated.Metadata.CreatedAt)
	require.False(t, updated.Metadata.UpdatedAt.Before(proj.Metadata.UpdatedAt))
}

func TestUpdateStatus(t *testing.T) {
	publisher := events.NewRecorder[domain.Event]()
	svc := NewService(petmemory.NewRepository(), WithEventPublisher(publisher))
	proj, err := svc.AddPet(context.Background(), addInput("Rex", "dog"))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), pettypes.UpdatePetStatusInput{ID: proj.Entity.ID, Status: "pending"})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, updated.Entity.Status)

	_, err = svc.UpdateStatus(context.Background(), pettypes.UpdatePetStatusInput{ID: proj.Entity.ID, Status: "pending"})
	require.NoError(t, err)
	require.Equal(t, []string{"pets.pet.created", "pets.pet.status_changed"}, publisher.Names())

	_, err = svc.UpdateStatus(context.Background(), pettypes.UpdatePetStatusInput{ID: 99, Status: "pending"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestFindByStatusAndTags(t *testing.T) {
	svc := NewService(petmemory.NewRepository())
	ctx := context.Background()

	rex, err := svc.AddPet(ctx, addInput("Rex", "dog"))
	require.NoError(t, err)
	tags := []pettypes.TagInput{{ID: 1, Name: "Calm"}}
	mia := addInput("Mia", "cat")
	mia.Tags = &tags
	_, err = svc.AddPet(ctx, mia)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, pettypes.UpdatePetStatusInput{ID: rex.Entity.ID, Status: "adopted"})
	require.NoError(t, err)

	available, err := svc.FindByStatus(ctx, pettypes.FindPetsByStatusInput{})
	require.NoError(t, err)
	require.Len(t, available, 1)
	require.Equal(t, "Mia", available[0].Entity.Name)

	adopted, err := svc.FindByStatus(ctx, pettypes.FindPetsByStatusInput{Statuses: []string{"adopted", "ADOPTED"}})
	require.NoError(t, err)
	require.Len(t, adopted, 1)

	_, err = svc.FindByStatus(ctx, pettypes.FindPetsByStatusInput{Statuses: []string{"sold"}})
	require.ErrorIs(t, err, ErrInvalidInput)

	calm, err := svc.FindByTags(ctx, pettypes.FindPetsByTagsInput{Tags: []string{" calm ", ""}})
	require.NoError(t, err)
	require.Len(t, calm, 1)
}

func TestDelete(t *testing.T) {
	publisher := events.NewRecorder[domain.Event]()
	svc := NewService(petmemory.NewRepository(), WithEventPublisher(publisher))
	ctx := context.Background()
	proj, err := svc.AddPet(ctx, addInput("Rex", "dog"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, pettypes.PetIdentifier{ID: proj.Entity.ID}))
	require.ErrorIs(t, svc.Delete(ctx, pettypes.PetIdentifier{ID: proj.Entity.ID}), ports.ErrNotFound)
	require.Contains(t, publisher.Names(), "pets.pet.deleted")

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}
