package types

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrNothingToUpdate is returned when a notes update carries neither field.
var ErrNothingToUpdate = errors.New("at least one of shelterNotes or userNotes must be provided")

// ApplicantInput carries the applicant questionnaire as submitted.
type ApplicantInput struct {
	FullName         string `validate:"required,max=200"`
	Email            string `validate:"required,email"`
	Phone            string `validate:"required,max=40"`
	Address          string `validate:"required,max=500"`
	EmploymentStatus string `validate:"omitempty,max=100"`
	HousingType      string `validate:"required"`
	HasYard          bool
	OtherPets        string `validate:"omitempty,max=2000"`
	Experience       string `validate:"omitempty,max=2000"`
	Motivation       string `validate:"omitempty,max=2000"`
}

// SubmitApplicationInput is the command to open an adoption application.
type SubmitApplicationInput struct {
	UserID         string `validate:"required,max=128"`
	PetID          int64  `validate:"gt=0"`
	InitialStatus  string `validate:"omitempty,oneof=applying application_sent"`
	Applicant      ApplicantInput
	UserNotes      string `validate:"omitempty,max=2000"`
	IdempotencyKey string `validate:"omitempty,max=255"`
}

// Validate checks the struct tags.
func (in SubmitApplicationInput) Validate() error {
	return validate.Struct(in)
}

// ApplicationIdentifier references an application by id.
type ApplicationIdentifier struct {
	ID string `validate:"required"`
}

// Validate checks the struct tags.
func (in ApplicationIdentifier) Validate() error {
	return validate.Struct(in)
}

// TransitionInput requests a status change, optionally leaving a shelter note.
type TransitionInput struct {
	ApplicationID string `validate:"required"`
	Status        string `validate:"required"`
	Note          string `validate:"omitempty,max=2000"`
}

// Validate checks the struct tags.
func (in TransitionInput) Validate() error {
	return validate.Struct(in)
}

// UpdateNotesInput replaces whichever notes are present.
type UpdateNotesInput struct {
	ApplicationID string  `validate:"required"`
	ShelterNotes  *string `validate:"omitempty,max=2000"`
	UserNotes     *string `validate:"omitempty,max=2000"`
}

// Validate checks the struct tags and that something is being updated.
func (in UpdateNotesInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	if in.ShelterNotes == nil && in.UserNotes == nil {
		return ErrNothingToUpdate
	}
	return nil
}

// ListApplicationsInput filters applications; zero values mean no filter.
type ListApplicationsInput struct {
	UserID string
	PetID  int64 `validate:"gte=0"`
}

// Validate checks the struct tags.
func (in ListApplicationsInput) Validate() error {
	return validate.Struct(in)
}

// PetIdentifier references a catalog pet.
type PetIdentifier struct {
	PetID int64 `validate:"gt=0"`
}

// Validate checks the struct tags.
func (in PetIdentifier) Validate() error {
	return validate.Struct(in)
}

// RecordInterestInput is a swipe on a pet card.
type RecordInterestInput struct {
	UserID string `validate:"required,max=128"`
	PetID  int64  `validate:"gt=0"`
	Type   string `validate:"required"`
}

// Validate checks the struct tags.
func (in RecordInterestInput) Validate() error {
	return validate.Struct(in)
}

// ListInterestsInput lists a user's swipes.
type ListInterestsInput struct {
	UserID       string `validate:"required"`
	PositiveOnly bool
}

// Validate checks the struct tags.
func (in ListInterestsInput) Validate() error {
	return validate.Struct(in)
}
