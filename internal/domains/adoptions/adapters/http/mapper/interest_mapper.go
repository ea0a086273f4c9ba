package mapper

import (
	"time"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
)

// InterestRequest is a swipe as posted by clients.
type InterestRequest struct {
	UserID       string `json:"userId"`
	PetID        int64  `json:"petId"`
	InterestType string `json:"interestType"`
}

// Interest is the HTTP representation of a stored swipe.
type Interest struct {
	UserID       string    `json:"userId"`
	PetID        int64     `json:"petId"`
	InterestType string    `json:"interestType"`
	SwipedAt     time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// ToRecordInterestInput converts the payload into the application command.
func ToRecordInterestInput(payload InterestRequest) adoptiontypes.RecordInterestInput {
	return adoptiontypes.RecordInterestInput{
		UserID: payload.UserID,
		PetID:  payload.PetID,
		Type:   payload.InterestType,
	}
}

// FromInterestProjection maps a stored swipe for transport.
func FromInterestProjection(projection *adoptiontypes.InterestProjection) Interest {
	interest := projection.Entity
	return Interest{
		UserID:       interest.UserID,
		PetID:        interest.PetID,
		InterestType: string(interest.Type),
		SwipedAt:     interest.CreatedAt,
		UpdatedAt:    projection.Metadata.UpdatedAt,
	}
}

// FromInterestList maps a slice of swipes.
func FromInterestList(list []*adoptiontypes.InterestProjection) []Interest {
	result := make([]Interest, 0, len(list))
	for _, projection := range list {
		result = append(result, FromInterestProjection(projection))
	}
	return result
}
