package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pet-adoption-api/internal/app/services"
	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
)

func addPet(t *testing.T, svc *services.Services, name string) int64 {
	t.Helper()
	species := "dog"
	pet, err := svc.Pets.AddPet(context.Background(), petstypes.AddPetInput{
		PetMutationInput: petstypes.PetMutationInput{Name: &name, Species: &species},
	})
	require.NoError(t, err)
	return pet.Entity.ID
}

func apply(t *testing.T, svc *services.Services, userID string, petID int64) string {
	t.Helper()
	created, err := svc.Adoptions.SubmitApplication(context.Background(), adoptiontypes.SubmitApplicationInput{
		UserID: userID,
		PetID:  petID,
		Applicant: adoptiontypes.ApplicantInput{
			FullName:    "Rosa Diaz",
			Email:       "rosa@example.com",
			Phone:       "555-0142",
			Address:     "4 Harbor Rd",
			HousingType: "house",
		},
	})
	require.NoError(t, err)
	return created.Entity.ID
}

func TestReconcileRepairsDriftAndCountsFailures(t *testing.T) {
	ctx := context.Background()
	svc, cleanup, err := services.Build(ctx, services.Options{}, nil)
	require.NoError(t, err)
	defer cleanup()

	locked := addPet(t, svc, "Biscuit")
	appID := apply(t, svc, "user-1", locked)
	for _, status := range []domain.Status{domain.StatusUnderReview, domain.StatusApproved, domain.StatusMeetScheduled, domain.StatusMeetingCompleted} {
		_, err := svc.Adoptions.TransitionApplication(ctx, adoptiontypes.TransitionInput{ApplicationID: appID, Status: string(status)})
		require.NoError(t, err)
	}
	// drift: the listing was reset behind the adoptions context's back
	_, err = svc.Pets.UpdateStatus(ctx, petstypes.UpdatePetStatusInput{ID: locked, Status: "available"})
	require.NoError(t, err)

	removed := addPet(t, svc, "Pepper")
	apply(t, svc, "user-2", removed)
	require.NoError(t, svc.Pets.Delete(ctx, petstypes.PetIdentifier{ID: removed}))

	summary, err := reconcile(ctx, svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Equal(t, reconcileSummary{Pets: 2, Synced: 1, Locked: 1, Failed: 1}, summary)

	pet, err := svc.Pets.GetByID(ctx, petstypes.PetIdentifier{ID: locked})
	require.NoError(t, err)
	assert.Equal(t, "pending", string(pet.Entity.Status))
}

func TestRunReturnsExitCodeWithoutDatabase(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	assert.Equal(t, 1, run())
}
