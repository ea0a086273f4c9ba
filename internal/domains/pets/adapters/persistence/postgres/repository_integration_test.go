//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	petspostgres "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/persistence/postgres"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/platform/postgres/postgrestest"
)

func newPet(t *testing.T, id int64, name string, status domain.Status) *domain.Pet {
	t.Helper()
	pet, err := domain.NewPet(id, name, "dog")
	require.NoError(t, err)
	_, err = pet.UpdateStatus(status)
	require.NoError(t, err)
	return pet
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	db := postgrestest.Start(t)

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	pet := newPet(t, 1, "Buddy", domain.StatusAvailable)
	pet.Breed = "beagle"
	require.NoError(t, pet.UpdateAge(30))
	pet.ReplacePhotos([]string{"http://example.com/buddy.jpg"})
	pet.ReplaceTags([]domain.Tag{{ID: 1, Name: "friendly"}, {ID: 2, Name: "trained"}})

	projection, err := repo.Save(ctx, pet)
	require.NoError(t, err)
	assert.Equal(t, "Buddy", projection.Entity.Name)
	assert.False(t, projection.Metadata.CreatedAt.IsZero())
	assert.False(t, projection.Metadata.UpdatedAt.IsZero())

	retrieved, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "beagle", retrieved.Entity.Breed)
	assert.Equal(t, 30, retrieved.Entity.AgeMonths)
	assert.Equal(t, domain.StatusAvailable, retrieved.Entity.Status)
	assert.Equal(t, []string{"http://example.com/buddy.jpg"}, retrieved.Entity.PhotoURLs)
	assert.Len(t, retrieved.Entity.Tags, 2)
}

func TestPostgresRepository_AssignsIDWhenMissing(t *testing.T) {
	db := postgrestest.Start(t)

	repo := petspostgres.NewRepository(db)
	saved, err := repo.Save(context.Background(), newPet(t, 0, "Nameless", domain.StatusAvailable))
	require.NoError(t, err)
	assert.Greater(t, saved.Entity.ID, int64(0))
}

func TestPostgresRepository_FindByStatus(t *testing.T) {
	db := postgrestest.Start(t)

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	pets := []struct {
		id     int64
		name   string
		status domain.Status
	}{
		{1, "Available Dog", domain.StatusAvailable},
		{2, "Pending Cat", domain.StatusPending},
		{3, "Adopted Bird", domain.StatusAdopted},
		{4, "Another Available", domain.StatusAvailable},
	}

	for _, p := range pets {
		_, err := repo.Save(ctx, newPet(t, p.id, p.name, p.status))
		require.NoError(t, err)
	}

	available, err := repo.FindByStatus(ctx, []domain.Status{domain.StatusAvailable})
	require.NoError(t, err)
	assert.Len(t, available, 2)

	pendingAndAdopted, err := repo.FindByStatus(ctx, []domain.Status{domain.StatusPending, domain.StatusAdopted})
	require.NoError(t, err)
	assert.Len(t, pendingAndAdopted, 2)
}

func TestPostgresRepository_FindByTags(t *testing.T) {
	db := postgrestest.Start(t)

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	pet1 := newPet(t, 1, "Friendly Dog", domain.StatusAvailable)
	pet1.ReplaceTags([]domain.Tag{{ID: 1, Name: "Friendly"}, {ID: 2, Name: "trained"}})
	_, err := repo.Save(ctx, pet1)
	require.NoError(t, err)

	pet2 := newPet(t, 2, "Lazy Cat", domain.StatusAvailable)
	pet2.ReplaceTags([]domain.Tag{{ID: 3, Name: "lazy"}, {ID: 4, Name: "indoor"}})
	_, err = repo.Save(ctx, pet2)
	require.NoError(t, err)

	result, err := repo.FindByTags(ctx, []string{"friendly"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Friendly Dog", result[0].Entity.Name)
}

func TestPostgresRepository_Delete(t *testing.T) {
	db := postgrestest.Start(t)

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	_, err := repo.Save(ctx, newPet(t, 1, "ToDelete", domain.StatusAvailable))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 1))

	_, err = repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_ListAndUpdate(t *testing.T) {
	db := postgrestest.Start(t)

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		_, err := repo.Save(ctx, newPet(t, i, fmt.Sprintf("Pet %d", i), domain.StatusAvailable))
		require.NoError(t, err)
	}
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, int64(1), all[0].Entity.ID)

	pet := all[0].Entity
	originalCreatedAt := all[0].Metadata.CreatedAt
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, pet.Rename("Updated Name"))
	_, err = pet.UpdateStatus(domain.StatusPending)
	require.NoError(t, err)
	updated, err := repo.Save(ctx, pet)
	require.NoError(t, err)

	assert.Equal(t, "Updated Name", updated.Entity.Name)
	assert.Equal(t, domain.StatusPending, updated.Entity.Status)
	assert.Equal(t, originalCreatedAt.Unix(), updated.Metadata.CreatedAt.Unix())
	assert.True(t, updated.Metadata.UpdatedAt.After(originalCreatedAt))
}
