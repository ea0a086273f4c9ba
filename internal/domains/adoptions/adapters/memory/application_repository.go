package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)

// ApplicationRepository is an in-memory implementation used for demos/tests.
type ApplicationRepository struct {
	mu   sync.RWMutex
	apps map[string]*storedApplication
	now  func() time.Time
}

type storedApplication struct {
	app      *domain.Application
	metadata projection.Metadata
}

// NewApplicationRepository constructs an empty in-memory store.
func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{
		apps: map[string]*storedApplication{},
		now:  time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *ApplicationRepository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces an application while maintaining metadata. Like the PostgreSQL
// partial unique index, a second active application for the same (user, pet) is rejected.
func (r *ApplicationRepository) Save(_ context.Context, app *domain.Application) (*projection.Projection[*domain.Application], error) {
	if app == nil {
		return nil, errors.New("cannot save nil application")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if app.IsActive() {
		for id, entry := range r.apps {
			if id != app.ID && entry.app.UserID == app.UserID && entry.app.PetID == app.PetID && entry.app.IsActive() {
				return nil, ports.ErrActiveApplicationExists
			}
		}
	}

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.apps[app.ID]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	stored := &storedApplication{app: app.Clone(), metadata: metadata}
	r.apps[app.ID] = stored
	return projectionCopy(stored), nil
}

// Update replaces a stored application only while its status still equals expected. Moving into a
// locking status fails with ports.ErrPetLocked when another application already holds the pet.
func (r *ApplicationRepository) Update(_ context.Context, app *domain.Application, expected domain.Status) (*projection.Projection[*domain.Application], error) {
	if app == nil {
		return nil, errors.New("cannot update nil application")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.apps[app.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if entry.app.Status != expected {
		return nil, ports.ErrStaleApplication
	}
	siblings := make([]*domain.Application, 0, len(r.apps))
	for _, other := range r.apps {
		if other.app.PetID == app.PetID {
			siblings = append(siblings, other.app)
		}
	}
	if domain.CompetingLock(app, siblings) != nil {
		return nil, ports.ErrPetLocked
	}

	stored := &storedApplication{
		app:      app.Clone(),
		metadata: projection.Metadata{CreatedAt: entry.metadata.CreatedAt, UpdatedAt: r.now()},
	}
	r.apps[app.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches an application if present.
func (r *ApplicationRepository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Application], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.apps[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// List returns applications matching the filter ordered by submission time.
func (r *ApplicationRepository) List(_ context.Context, filter ports.ApplicationFilter) ([]*projection.Projection[*domain.Application], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Application], 0, len(r.apps))
	for _, entry := range r.apps {
		if filter.UserID != "" && entry.app.UserID != filter.UserID {
			continue
		}
		if filter.PetID != 0 && entry.app.PetID != filter.PetID {
			continue
		}
		list = append(list, projectionCopy(entry))
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Entity, list[j].Entity
		if a.AppliedAt.Equal(b.AppliedAt) {
			return a.ID < b.ID
		}
		return a.AppliedAt.Before(b.AppliedAt)
	})
	return list, nil
}

// PetIDs returns the distinct pets referenced by stored applications, ascending.
func (r *ApplicationRepository) PetIDs(_ context.Context) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[int64]struct{}{}
	ids := make([]int64, 0)
	for _, entry := range r.apps {
		if _, ok := seen[entry.app.PetID]; ok {
			continue
		}
		seen[entry.app.PetID] = struct{}{}
		ids = append(ids, entry.app.PetID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func projectionCopy(entry *storedApplication) *projection.Projection[*domain.Application] {
	return &projection.Projection[*domain.Application]{
		Entity:   entry.app.Clone(),
		Metadata: entry.metadata,
	}
}
