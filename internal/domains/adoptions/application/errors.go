package application

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

var (
	// ErrInvalidInput signals the request violated a validation rule or domain invariant.
	ErrInvalidInput = errors.New("invalid adoption input")
	// ErrDuplicateApplication signals the user already has an active application for the pet.
	ErrDuplicateApplication = errors.New("user already has an active application for this pet")
	// ErrPetUnavailable signals the pet is locked by an application past the meeting stage.
	ErrPetUnavailable = errors.New("pet is not available for new applications")
	// ErrConcurrentUpdate signals the application changed between load and write; the caller may retry.
	ErrConcurrentUpdate = errors.New("application was modified concurrently")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) ||
		errors.Is(err, adoptiontypes.ErrNothingToUpdate) ||
		errors.Is(err, domain.ErrEmptyApplicationID) ||
		errors.Is(err, domain.ErrEmptyUserID) ||
		errors.Is(err, domain.ErrInvalidPetID) ||
		errors.Is(err, domain.ErrInvalidInitial) ||
		errors.Is(err, domain.ErrEmptyFullName) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyPhone) ||
		errors.Is(err, domain.ErrEmptyAddress) ||
		errors.Is(err, domain.ErrInvalidHousingType) ||
		errors.Is(err, domain.ErrInvalidInterestType) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	switch {
	case errors.Is(err, ports.ErrActiveApplicationExists):
		return fmt.Errorf("%w: %w", ErrDuplicateApplication, err)
	case errors.Is(err, ports.ErrPetLocked):
		return fmt.Errorf("%w: %w", ErrPetUnavailable, err)
	case errors.Is(err, ports.ErrStaleApplication):
		return fmt.Errorf("%w: %w", ErrConcurrentUpdate, err)
	}
	return err
}
