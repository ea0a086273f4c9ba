package observability

import (
	"errors"

	adoptionapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

// rejectionReason buckets an error into a low-cardinality metric label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, adoptionapp.ErrDuplicateApplication):
		return "duplicate_application"
	case errors.Is(err, adoptionapp.ErrPetUnavailable):
		return "pet_unavailable"
	case errors.Is(err, adoptionapp.ErrConcurrentUpdate):
		return "concurrent_update"
	case errors.Is(err, adoptionapp.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ports.ErrIdempotencyConflict):
		return "idempotency_conflict"
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrPetNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
