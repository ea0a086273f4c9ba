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

var _ ports.InterestRepository = (*InterestRepository)(nil)

type interestKey struct {
	userID string
	petID  int64
}

type storedInterest struct {
	interest domain.PetInterest
	metadata projection.Metadata
}

// InterestRepository keeps the latest swipe per (user, pet) in memory.
type InterestRepository struct {
	mu        sync.RWMutex
	interests map[interestKey]*storedInterest
	now       func() time.Time
}

// NewInterestRepository constructs an empty in-memory store.
func NewInterestRepository() *InterestRepository {
	return &InterestRepository{
		interests: map[interestKey]*storedInterest{},
		now:       time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *InterestRepository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Upsert replaces any earlier swipe by the same user on the same pet.
func (r *InterestRepository) Upsert(_ context.Context, interest *domain.PetInterest) (*projection.Projection[*domain.PetInterest], error) {
	if interest == nil {
		return nil, errors.New("cannot save nil interest")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := interestKey{userID: interest.UserID, petID: interest.PetID}
	timestamp := r.now()
	metadata := projection.Metadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if entry, ok := r.interests[key]; ok {
		metadata.CreatedAt = entry.metadata.CreatedAt
	}
	stored := &storedInterest{interest: *interest, metadata: metadata}
	r.interests[key] = stored
	return interestProjection(stored), nil
}

// FindByUser returns the user's swipes, newest first.
func (r *InterestRepository) FindByUser(_ context.Context, userID string) ([]*projection.Projection[*domain.PetInterest], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.PetInterest]
	for key, entry := range r.interests {
		if key.userID == userID {
			list = append(list, interestProjection(entry))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Entity, list[j].Entity
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.PetID < b.PetID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return list, nil
}

func interestProjection(entry *storedInterest) *projection.Projection[*domain.PetInterest] {
	interest := entry.interest
	return &projection.Projection[*domain.PetInterest]{Entity: &interest, Metadata: entry.metadata}
}
