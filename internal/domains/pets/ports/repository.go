package ports

import (
	"context"
	"errors"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var ErrNotFound = errors.New("pet not found")

// Repository stores pets. Save assigns an id when the pet carries none.
type Repository interface {
	Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error)
	Delete(ctx context.Context, id int64) error
	FindByStatus(ctx context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Pet], error)
	FindByTags(ctx context.Context, tags []string) ([]*projection.Projection[*domain.Pet], error)
	List(ctx context.Context) ([]*projection.Projection[*domain.Pet], error)
}

// EventPublisher hands recorded pet events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}
