package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var (
	ErrNotFound = errors.New("adoption application not found")
	// ErrStaleApplication is returned by Update when the stored status no longer matches the one
	// the caller loaded.
	ErrStaleApplication = errors.New("adoption application changed since it was loaded")
	// ErrPetLocked is returned by Update when another application already locks the pet.
	ErrPetLocked = errors.New("pet is locked by another application")
)

// ApplicationFilter narrows List; zero values mean no filter.
type ApplicationFilter struct {
	UserID string
	PetID  int64
}

// ApplicationRepository stores applications. Applications are never deleted.
type ApplicationRepository interface {
	// Save inserts app or replaces it unconditionally; changes to a loaded application go through Update.
	Save(ctx context.Context, app *domain.Application) (*projection.Projection[*domain.Application], error)
	// Update writes app only while its stored status still equals expected, and refuses to move
	// app into a locking status when a competing application already holds its pet.
	Update(ctx context.Context, app *domain.Application, expected domain.Status) (*projection.Projection[*domain.Application], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Application], error)
	List(ctx context.Context, filter ApplicationFilter) ([]*projection.Projection[*domain.Application], error)
	// PetIDs returns every pet that has at least one application on file.
	PetIDs(ctx context.Context) ([]int64, error)
}

// InterestRepository keeps one swipe per (user, pet).
type InterestRepository interface {
	Upsert(ctx context.Context, interest *domain.PetInterest) (*projection.Projection[*domain.PetInterest], error)
	FindByUser(ctx context.Context, userID string) ([]*projection.Projection[*domain.PetInterest], error)
}

// ErrActiveApplicationExists is returned by Save when the store's uniqueness guard rejects a
// second active application for the same (user, pet).
var ErrActiveApplicationExists = errors.New("active application already exists for user and pet")
