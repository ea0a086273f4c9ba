package domain

import (
	"errors"
	"strings"
	"time"
)

// InterestType is the reaction a user gave a pet card.
type InterestType string

const (
	InterestLike      InterestType = "like"
	InterestSuperLike InterestType = "super_like"
	InterestPass      InterestType = "pass"
)

var ErrInvalidInterestType = errors.New("interest type must be one of like, super_like, pass")

// PetInterest is a swipe signal, independent from any application.
type PetInterest struct {
	UserID    string
	PetID     int64
	Type      InterestType
	CreatedAt time.Time
}

// IsValid reports whether t is a known reaction.
func (t InterestType) IsValid() bool {
	switch t {
	case InterestLike, InterestSuperLike, InterestPass:
		return true
	default:
		return false
	}
}

// IsPositive reports whether the reaction usually precedes an application.
func (t InterestType) IsPositive() bool {
	return t == InterestLike || t == InterestSuperLike
}

// NewPetInterest validates and builds a swipe record.
func NewPetInterest(userID string, petID int64, kind InterestType, now time.Time) (*PetInterest, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if petID <= 0 {
		return nil, ErrInvalidPetID
	}
	kind = InterestType(strings.ToLower(strings.TrimSpace(string(kind))))
	if !kind.IsValid() {
		return nil, ErrInvalidInterestType
	}
	return &PetInterest{UserID: userID, PetID: petID, Type: kind, CreatedAt: now}, nil
}
