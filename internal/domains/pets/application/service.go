package application

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"

	types "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo      ports.Repository
	publisher ports.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithEventPublisher forwards pet events after each successful write.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AddPet persists a new pet aggregate.
func (s *Service) AddPet(ctx context.Context, input types.AddPetInput) (*types.PetProjection, error) {
	pet, err := buildPetFromMutation(input.PetMutationInput)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, domain.PetCreated{
		BaseEvent: domain.BaseEvent{Timestamp: s.now()},
		PetID:     saved.Entity.ID,
		Name:      saved.Entity.Name,
		Species:   saved.Entity.Species,
		Status:    saved.Entity.Status,
	})
	return saved, nil
}

// UpdatePet overrides an existing pet with new state.
func (s *Service) UpdatePet(ctx context.Context, input types.UpdatePetInput) (*types.PetProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	previous := projection.Entity.Status
	if err := applyPartialMutation(projection.Entity, input.PetMutationInput); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, projection.Entity)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, domain.PetUpdated{
		BaseEvent:      domain.BaseEvent{Timestamp: s.now()},
		PetID:          saved.Entity.ID,
		Name:           saved.Entity.Name,
		Status:         saved.Entity.Status,
		PreviousStatus: previous,
	})
	return saved, nil
}

// UpdateStatus changes only the listing status. Writing the current status again is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, input types.UpdatePetStatusInput) (*types.PetProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	pet := projection.Entity
	previous, err := pet.UpdateStatus(domain.Status(input.Status))
	if err != nil {
		return nil, mapError(err)
	}
	if previous == pet.Status {
		return projection, nil
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, domain.PetStatusChanged{
		BaseEvent:  domain.BaseEvent{Timestamp: s.now()},
		PetID:      pet.ID,
		FromStatus: previous,
		ToStatus:   pet.Status,
	})
	return saved, nil
}

// FindByStatus searches pets matching any of the provided statuses; none means available.
func (s *Service) FindByStatus(ctx context.Context, input types.FindPetsByStatusInput) ([]*types.PetProjection, error) {
	statuses := make([]domain.Status, 0, len(input.Statuses))
	for _, raw := range input.Statuses {
		status := domain.Status(strings.ToLower(strings.TrimSpace(raw)))
		if !status.IsValid() {
			return nil, mapError(domain.ErrInvalidStatus)
		}
		statuses = append(statuses, status)
	}
	if len(statuses) == 0 {
		statuses = []domain.Status{domain.StatusAvailable}
	}
	result, err := s.repo.FindByStatus(ctx, lo.Uniq(statuses))
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// FindByTags searches pets matching any supplied tag name.
func (s *Service) FindByTags(ctx context.Context, input types.FindPetsByTagsInput) ([]*types.PetProjection, error) {
	tags := lo.Compact(lo.Map(input.Tags, func(tag string, _ int) string {
		return strings.TrimSpace(tag)
	}))
	result, err := s.repo.FindByTags(ctx, tags)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// GetByID loads a single pet aggregate.
func (s *Service) GetByID(ctx context.Context, input types.PetIdentifier) (*types.PetProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

// Delete removes a pet.
func (s *Service) Delete(ctx context.Context, input types.PetIdentifier) error {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return mapError(err)
	}
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	s.publish(ctx, domain.PetDeleted{
		BaseEvent: domain.BaseEvent{Timestamp: s.now()},
		PetID:     input.ID,
		Name:      projection.Entity.Name,
	})
	return nil
}

// List exposes all pets ordered by id.
func (s *Service) List(ctx context.Context) ([]*types.PetProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (s *Service) publish(ctx context.Context, events ...domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "publishing pet events failed", slog.String("error", err.Error()))
	}
}

func buildPetFromMutation(input types.PetMutationInput) (*domain.Pet, error) {
	if input.Name == nil {
		return nil, domain.ErrEmptyName
	}
	if input.Species == nil {
		return nil, domain.ErrEmptySpecies
	}
	pet, err := domain.NewPet(input.ID, *input.Name, *input.Species)
	if err != nil {
		return nil, err
	}
	partial := input
	partial.Name = nil
	partial.Species = nil
	if err := applyPartialMutation(pet, partial); err != nil {
		return nil, err
	}
	return pet, nil
}

func applyPartialMutation(target *domain.Pet, input types.PetMutationInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.Species != nil {
		if err := target.ChangeSpecies(*input.Species); err != nil {
			return err
		}
	}
	if input.Breed != nil {
		target.Breed = strings.TrimSpace(*input.Breed)
	}
	if input.AgeMonths != nil {
		if err := target.UpdateAge(*input.AgeMonths); err != nil {
			return err
		}
	}
	if input.Description != nil {
		target.Description = *input.Description
	}
	if input.PhotoURLs != nil {
		target.ReplacePhotos(*input.PhotoURLs)
	}
	if input.Tags != nil {
		target.ReplaceTags(lo.Map(*input.Tags, func(t types.TagInput, _ int) domain.Tag {
			return domain.Tag{ID: t.ID, Name: t.Name}
		}))
	}
	if input.Status != nil {
		if _, err := target.UpdateStatus(domain.Status(*input.Status)); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
