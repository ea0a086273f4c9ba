package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory implementation used for demos/tests.
type Repository struct {
	mu     sync.RWMutex
	pets   map[int64]*storedPet
	lastID int64
	now    func() time.Time
}

type storedPet struct {
	pet      *domain.Pet
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		pets: map[int64]*storedPet{},
		now:  time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a pet while maintaining metadata. A zero id gets the next free one.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := pet.Clone()
	if stored.ID == 0 {
		stored.ID = r.lastID + 1
	}
	if stored.ID > r.lastID {
		r.lastID = stored.ID
	}

	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.pets[stored.ID]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}

	entry := &storedPet{pet: stored, metadata: metadata}
	r.pets[stored.ID] = entry
	return projectionCopy(entry), nil
}

// GetByID fetches a pet if present.
func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.pets[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Delete removes a pet.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pets[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.pets, id)
	return nil
}

// FindByStatus returns pets with matching status.
func (r *Repository) FindByStatus(_ context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Pet], error) {
	set := map[domain.Status]struct{}{}
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return r.filter(func(p *domain.Pet) bool {
		_, ok := set[p.Status]
		return ok
	}), nil
}

// FindByTags returns pets with overlapping tags.
func (r *Repository) FindByTags(_ context.Context, tags []string) ([]*projection.Projection[*domain.Pet], error) {
	if len(tags) == 0 {
		return nil, nil
	}
	return r.filter(func(p *domain.Pet) bool {
		for _, tag := range tags {
			if p.HasTag(strings.TrimSpace(tag)) {
				return true
			}
		}
		return false
	}), nil
}

// List returns all pets.
func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Pet], error) {
	return r.filter(func(*domain.Pet) bool { return true }), nil
}

func (r *Repository) filter(keep func(*domain.Pet) bool) []*projection.Projection[*domain.Pet] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.Pet]
	for _, entry := range r.pets {
		if keep(entry.pet) {
			list = append(list, projectionCopy(entry))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Entity.ID < list[j].Entity.ID })
	return list
}

func projectionCopy(entry *storedPet) *projection.Projection[*domain.Pet] {
	return &projection.Projection[*domain.Pet]{
		Entity:   entry.pet.Clone(),
		Metadata: entry.metadata,
	}
}
