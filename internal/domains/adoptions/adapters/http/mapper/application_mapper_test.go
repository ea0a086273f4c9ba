package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

func TestFromProjectionCarriesStatusInfoAndMetadata(t *testing.T) {
	applied := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	app, err := domain.NewApplication("app-1", "user-1", 7, domain.ApplicantInfo{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "555-0100",
		Address:     "1 Main St",
		HousingType: domain.HousingHouse,
		HasYard:     true,
	}, "", applied)
	require.NoError(t, err)

	got := FromProjection(&adoptiontypes.ApplicationProjection{
		Entity:   app,
		Metadata: projection.Metadata{CreatedAt: applied, UpdatedAt: applied.Add(time.Minute)},
	})

	assert.Equal(t, "application_sent", got.Status)
	assert.Equal(t, "house", got.ApplicantInfo.HousingType)
	assert.True(t, got.ApplicantInfo.HasYard)
	assert.Equal(t, []string{"under_review", "withdrawn"}, got.StatusInfo.NextStatuses)
	assert.False(t, got.StatusInfo.CanUserTakeAction)
	assert.Equal(t, applied.Add(time.Minute), got.UpdatedAt)
	assert.Nil(t, got.ReviewedAt)
}

func TestFromDescriptorUnknownStatusHasEmptyNextList(t *testing.T) {
	got := FromDescriptor(adoptiontypes.DescribeStatus(domain.Status("lost")))

	assert.False(t, got.Known)
	assert.Equal(t, domain.UnknownStatusMessage, got.Message)
	assert.Equal(t, string(domain.ColorNeutral), got.Color)
	assert.NotNil(t, got.NextStatuses)
	assert.Empty(t, got.NextStatuses)
}

func TestToSubmitInputKeepsIdempotencyKey(t *testing.T) {
	input := ToSubmitInput(SubmitApplication{
		UserID:        "user-1",
		PetID:         3,
		ApplicantInfo: ApplicantInfo{FullName: "Sam", HousingType: "condo"},
	}, "key-1")

	assert.Equal(t, "key-1", input.IdempotencyKey)
	assert.Equal(t, "condo", input.Applicant.HousingType)
	assert.Equal(t, int64(3), input.PetID)
}
