package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

// Service orchestrates the adoptions bounded context use cases.
type Service struct {
	repo        ports.ApplicationRepository
	interests   ports.InterestRepository
	catalog     ports.PetCatalog
	idempotency ports.IdempotencyStore
	publisher   ports.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string

	// submitMu serializes the duplicate/availability check with the insert inside one process.
	submitMu sync.Mutex
}

// Option customizes the service.
type Option func(*Service)

// WithPetCatalog enables pet existence checks and listing status sync.
func WithPetCatalog(catalog ports.PetCatalog) Option {
	return func(s *Service) {
		s.catalog = catalog
	}
}

// WithIdempotencyStore enables Idempotency-Key replay for submissions.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// WithEventPublisher receives domain events after each successful save.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithLogger is used for failures that do not fail the request, such as listing sync.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator overrides application id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// NewService wires the adoptions service with its dependencies.
func NewService(repo ports.ApplicationRepository, interests ports.InterestRepository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		interests: interests,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SubmitApplication opens a new application after checking the pet and the user's other applications.
func (s *Service) SubmitApplication(ctx context.Context, input adoptiontypes.SubmitApplicationInput) (*adoptiontypes.ApplicationProjection, error) {
	if err := input.Validate(); err != nil {
		return nil, mapError(err)
	}
	key := strings.TrimSpace(input.IdempotencyKey)
	if s.idempotency == nil {
		key = ""
	}
	var hash string
	if key != "" {
		fingerprint, err := FingerprintSubmission(input)
		if err != nil {
			return nil, err
		}
		hash = fingerprint
		replayed, err := s.replay(ctx, key, hash)
		if err != nil || replayed != nil {
			return replayed, err
		}
	}

	app, err := domain.NewApplication(
		s.newID(),
		input.UserID,
		input.PetID,
		toApplicantInfo(input.Applicant),
		domain.Status(strings.ToLower(strings.TrimSpace(input.InitialStatus))),
		s.now(),
	)
	if err != nil {
		return nil, mapError(err)
	}
	app.UpdateUserNotes(input.UserNotes)

	saved, replayed, err := s.insertChecked(ctx, app, key, hash)
	if err != nil && key != "" && errors.Is(mapError(err), ErrDuplicateApplication) {
		// another process may have committed the same keyed request first
		if prior, replayErr := s.replay(ctx, key, hash); replayErr == nil && prior != nil {
			return prior, nil
		}
	}
	if err != nil {
		return nil, mapError(err)
	}
	if replayed {
		return saved, nil
	}
	s.publish(ctx, app)
	s.syncListingQuietly(ctx, app.PetID)
	return saved, nil
}

func (s *Service) replay(ctx context.Context, key, hash string) (*adoptiontypes.ApplicationProjection, error) {
	record, err := s.idempotency.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	if record.RequestHash != hash {
		return nil, ports.ErrIdempotencyConflict
	}
	return s.loadApplication(ctx, record.ApplicationID)
}

// insertChecked runs the keyed replay lookup, the duplicate and availability checks, the insert
// and the key write under submitMu. replayed is true when an earlier request with the same key won.
func (s *Service) insertChecked(ctx context.Context, app *domain.Application, key, hash string) (*adoptiontypes.ApplicationProjection, bool, error) {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	if key != "" {
		prior, err := s.replay(ctx, key, hash)
		if err != nil || prior != nil {
			return prior, true, err
		}
	}
	if err := s.ensurePetExists(ctx, app.PetID); err != nil {
		return nil, false, err
	}
	existing, err := s.applicationsForPet(ctx, app.PetID)
	if err != nil {
		return nil, false, err
	}
	duplicate := lo.ContainsBy(existing, func(other *domain.Application) bool {
		return other.UserID == app.UserID && other.IsActive()
	})
	if duplicate {
		return nil, false, ErrDuplicateApplication
	}
	if !domain.IsPetAvailable(app.PetID, existing) {
		return nil, false, ErrPetUnavailable
	}
	saved, err := s.repo.Save(ctx, app)
	if err != nil {
		return nil, false, err
	}
	if key != "" {
		record, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: hash, ApplicationID: saved.Entity.ID})
		if err != nil {
			if record != nil && record.RequestHash == hash {
				prior, err := s.loadApplication(ctx, record.ApplicationID)
				return prior, true, err
			}
			return nil, false, err
		}
	}
	return saved, false, nil
}

// TransitionApplication moves an application along the transition table.
func (s *Service) TransitionApplication(ctx context.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, error) {
	if err := input.Validate(); err != nil {
		return nil, mapError(err)
	}
	requested, ok := domain.ParseStatus(input.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	}
	current, err := s.repo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, mapError(err)
	}
	app := current.Entity
	loaded := app.Status
	if err := app.Transition(requested, s.now()); err != nil {
		return nil, mapError(err)
	}
	app.AppendShelterNote(input.Note)
	saved, err := s.repo.Update(ctx, app, loaded)
	if err != nil {
		return nil, mapError(err)
	}
	s.publish(ctx, app)
	s.syncListingQuietly(ctx, app.PetID)
	return saved, nil
}

// WithdrawApplication is the applicant's way out of an active application.
func (s *Service) WithdrawApplication(ctx context.Context, input adoptiontypes.ApplicationIdentifier) (*adoptiontypes.ApplicationProjection, error) {
	if err := input.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.TransitionApplication(ctx, adoptiontypes.TransitionInput{
		ApplicationID: input.ID,
		Status:        string(domain.StatusWithdrawn),
	})
}

// UpdateNotes replaces the shelter and/or user notes.
func (s *Service) UpdateNotes(ctx context.Context, input adoptiontypes.UpdateNotesInput) (*adoptiontypes.ApplicationProjection, error) {
	if err := input.Validate(); err != nil {
		return nil, mapError(err)
	}
	current, err := s.repo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, mapError(err)
	}
	app := current.Entity
	if input.ShelterNotes != nil {
		app.UpdateShelterNotes(*input.ShelterNotes)
	}
	if input.UserNotes != nil {
		app.UpdateUserNotes(*input.UserNotes)
	}
	saved, err := s.repo.Update(ctx, app, app.Status)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetApplication loads a single application.
func (s *Service) GetApplication(ctx context.Context, input adoptiontypes.ApplicationIdentifier) (*adoptiontypes.ApplicationProjection, error) {
	if err := input.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.loadApplication(ctx, input.ID)
}

// ListApplications filters by user and/or pet; no filter lists everything.
func (s *Service) ListApplications(ctx context.Context, input adoptiontypes.ListApplicationsInput) ([]*adoptiontypes.ApplicationProjection, error) {
	if err := input.Validate(); err != nil {
		return nil, mapError(err)
	}
	result, err := s.repo.List(ctx, ports.ApplicationFilter{UserID: strings.TrimSpace(input.UserID), PetID: input.PetID})
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// PetAvailability evaluates every application on file for the pet.
func (s *Service) PetAvailability(ctx context.Context, input adoptiontypes.PetIdentifier) (*adoptiontypes.PetAvailability, error) {
	if err := input.Validate(); err != nil {
		return nil, mapError(err)
	}
	if err := s.ensurePetExists(ctx, input.PetID); err != nil {
		return nil, mapError(err)
	}
	apps, err := s.applicationsForPet(ctx, input.PetID)
	if err != nil {
		return nil, mapError(err)
	}
	return availabilityOf(input.PetID, apps), nil
}

// SyncPetListing recomputes the pet's listing status and writes it to the catalog.
func (s *Service) SyncPetListing(ctx context.Context, input adoptiontypes.PetIdentifier) (*adoptiontypes.PetAvailability, error) {
	if err := input.Validate(); err != nil {
		return nil, mapError(err)
	}
	apps, err := s.applicationsForPet(ctx, input.PetID)
	if err != nil {
		return nil, mapError(err)
	}
	availability := availabilityOf(input.PetID, apps)
	if s.catalog != nil {
		if err := s.catalog.SetListingStatus(ctx, input.PetID, availability.ListingStatus); err != nil {
			return nil, mapError(err)
		}
	}
	return availability, nil
}

// RecordInterest stores a swipe, replacing the user's previous swipe on the same pet.
func (s *Service) RecordInterest(ctx context.Context, input adoptiontypes.RecordInterestInput) (*adoptiontypes.InterestProjection, error) {
	if err := input.Validate(); err != nil {
		return nil, mapError(err)
	}
	interest, err := domain.NewPetInterest(input.UserID, input.PetID, domain.InterestType(input.Type), s.now())
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.ensurePetExists(ctx, interest.PetID); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.interests.Upsert(ctx, interest)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListInterests returns a user's swipes, optionally only likes and super likes.
func (s *Service) ListInterests(ctx context.Context, input adoptiontypes.ListInterestsInput) ([]*adoptiontypes.InterestProjection, error) {
	if err := input.Validate(); err != nil {
		return nil, mapError(err)
	}
	result, err := s.interests.FindByUser(ctx, strings.TrimSpace(input.UserID))
	if err != nil {
		return nil, mapError(err)
	}
	if input.PositiveOnly {
		result = lo.Filter(result, func(item *adoptiontypes.InterestProjection, _ int) bool {
			return item.Entity.Type.IsPositive()
		})
	}
	return result, nil
}

func (s *Service) loadApplication(ctx context.Context, id string) (*adoptiontypes.ApplicationProjection, error) {
	projection, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

func (s *Service) applicationsForPet(ctx context.Context, petID int64) ([]*domain.Application, error) {
	list, err := s.repo.List(ctx, ports.ApplicationFilter{PetID: petID})
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(item *adoptiontypes.ApplicationProjection, _ int) *domain.Application {
		return item.Entity
	}), nil
}

func (s *Service) ensurePetExists(ctx context.Context, petID int64) error {
	if s.catalog == nil {
		return nil
	}
	exists, err := s.catalog.Exists(ctx, petID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %d", ports.ErrPetNotFound, petID)
	}
	return nil
}

func (s *Service) syncListingQuietly(ctx context.Context, petID int64) {
	if s.catalog == nil {
		return
	}
	if _, err := s.SyncPetListing(ctx, adoptiontypes.PetIdentifier{PetID: petID}); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "pet listing sync failed",
			slog.Int64("pet.id", petID), slog.String("error", err.Error()))
	}
}

func (s *Service) publish(ctx context.Context, app *domain.Application) {
	events := app.Events()
	app.ClearEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "publishing adoption events failed",
			slog.String("application.id", app.ID), slog.String("error", err.Error()))
	}
}

func availabilityOf(petID int64, apps []*domain.Application) *adoptiontypes.PetAvailability {
	result := &adoptiontypes.PetAvailability{
		PetID:         petID,
		Available:     domain.IsPetAvailable(petID, apps),
		ListingStatus: domain.ListingStatusFor(petID, apps),
		ActiveApplications: lo.CountBy(apps, func(app *domain.Application) bool {
			return app.PetID == petID && app.IsActive()
		}),
	}
	if locking := domain.LockingApplication(petID, apps); locking != nil {
		result.LockingApplicationID = locking.ID
	}
	return result
}

func toApplicantInfo(input adoptiontypes.ApplicantInput) domain.ApplicantInfo {
	return domain.ApplicantInfo{
		FullName:         input.FullName,
		Email:            input.Email,
		Phone:            input.Phone,
		Address:          input.Address,
		EmploymentStatus: input.EmploymentStatus,
		HousingType:      domain.HousingType(input.HousingType),
		HasYard:          input.HasYard,
		OtherPets:        input.OtherPets,
		Experience:       input.Experience,
		Motivation:       input.Motivation,
	}
}

var _ ports.Service = (*Service)(nil)
