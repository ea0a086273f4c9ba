package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyApplicationID = errors.New("application id is required")
	ErrEmptyUserID        = errors.New("user id is required")
	ErrInvalidPetID       = errors.New("pet id must be greater than zero")
	ErrInvalidInitial     = errors.New("a new application must start as applying or application_sent")
)

// Application is one user's attempt to adopt one pet.
type Application struct {
	ID                 string
	UserID             string
	PetID              int64
	Status             Status
	Applicant          ApplicantInfo
	AppliedAt          time.Time
	ReviewedAt         *time.Time
	ApprovedAt         *time.Time
	MeetingScheduledAt *time.Time
	AdoptedAt          *time.Time
	ShelterNotes       string
	UserNotes          string

	events []Event
}

// NewApplication validates the submission and records an ApplicationSubmitted event.
// An empty initial status defaults to application_sent.
func NewApplication(id, userID string, petID int64, applicant ApplicantInfo, initial Status, now time.Time) (*Application, error) {
	id = strings.TrimSpace(id)
	userID = strings.TrimSpace(userID)
	if id == "" {
		return nil, ErrEmptyApplicationID
	}
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if petID <= 0 {
		return nil, ErrInvalidPetID
	}
	if initial == "" {
		initial = StatusApplicationSent
	}
	if initial != StatusApplying && initial != StatusApplicationSent {
		return nil, ErrInvalidInitial
	}
	applicant = applicant.Normalize()
	if err := applicant.Validate(); err != nil {
		return nil, err
	}
	app := &Application{
		ID:        id,
		UserID:    userID,
		PetID:     petID,
		Status:    initial,
		Applicant: applicant,
		AppliedAt: now,
	}
	app.record(ApplicationSubmitted{
		BaseEvent:     BaseEvent{Timestamp: now},
		ApplicationID: id,
		UserID:        userID,
		PetID:         petID,
		Status:        initial,
	})
	return app, nil
}

// IsActive reports whether the application can still move forward.
func (a *Application) IsActive() bool {
	return !a.Status.IsTerminal()
}

// Transition moves the application to requested when the table allows it and stamps the
// milestone timestamp the first time that milestone is reached.
func (a *Application) Transition(requested Status, at time.Time) error {
	next, err := AttemptTransition(a.Status, requested)
	if err != nil {
		return err
	}
	previous := a.Status
	a.Status = next
	switch next {
	case StatusUnderReview:
		stampOnce(&a.ReviewedAt, at)
	case StatusApproved:
		stampOnce(&a.ApprovedAt, at)
	case StatusMeetScheduled:
		stampOnce(&a.MeetingScheduledAt, at)
	case StatusAdopted:
		stampOnce(&a.AdoptedAt, at)
	}
	a.record(ApplicationStatusChanged{
		BaseEvent:     BaseEvent{Timestamp: at},
		ApplicationID: a.ID,
		PetID:         a.PetID,
		FromStatus:    previous,
		ToStatus:      next,
	})
	return nil
}

// UpdateShelterNotes replaces the shelter's annotation.
func (a *Application) UpdateShelterNotes(notes string) {
	a.ShelterNotes = strings.TrimSpace(notes)
}

// AppendShelterNote adds a line to the shelter's annotation.
func (a *Application) AppendShelterNote(note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	if a.ShelterNotes == "" {
		a.ShelterNotes = note
		return
	}
	a.ShelterNotes = a.ShelterNotes + "\n" + note
}

// UpdateUserNotes replaces the applicant's annotation.
func (a *Application) UpdateUserNotes(notes string) {
	a.UserNotes = strings.TrimSpace(notes)
}

// Events returns the domain events recorded since the last ClearEvents.
func (a *Application) Events() []Event {
	return append([]Event{}, a.events...)
}

// ClearEvents drops recorded events once they have been published.
func (a *Application) ClearEvents() {
	a.events = nil
}

// Clone returns a deep copy without recorded events.
func (a *Application) Clone() *Application {
	if a == nil {
		return nil
	}
	clone := *a
	clone.ReviewedAt = cloneTime(a.ReviewedAt)
	clone.ApprovedAt = cloneTime(a.ApprovedAt)
	clone.MeetingScheduledAt = cloneTime(a.MeetingScheduledAt)
	clone.AdoptedAt = cloneTime(a.AdoptedAt)
	clone.events = nil
	return &clone
}

func (a *Application) record(event Event) {
	a.events = append(a.events, event)
}

func stampOnce(target **time.Time, at time.Time) {
	if *target != nil {
		return
	}
	value := at
	*target = &value
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := *t
	return &value
}

var _ AggregateWithEvents = (*Application)(nil)
