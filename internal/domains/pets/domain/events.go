package domain

import "time"

// Event is the base interface for all domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// PetCreated is raised when a new pet is listed.
type PetCreated struct {
	BaseEvent
	PetID   int64
	Name    string
	Species string
	Status  Status
}

// EventName returns the event type identifier.
func (e PetCreated) EventName() string {
	return "pets.pet.created"
}

// PetUpdated is raised when a pet's attributes are modified.
type PetUpdated struct {
	BaseEvent
	PetID          int64
	Name           string
	Status         Status
	PreviousStatus Status
}

// EventName returns the event type identifier.
func (e PetUpdated) EventName() string {
	return "pets.pet.updated"
}

// PetDeleted is raised when a pet is removed from the catalog.
type PetDeleted struct {
	BaseEvent
	PetID int64
	Name  string
}

// EventName returns the event type identifier.
func (e PetDeleted) EventName() string {
	return "pets.pet.deleted"
}

// PetStatusChanged is raised when only the listing status changes.
type PetStatusChanged struct {
	BaseEvent
	PetID      int64
	FromStatus Status
	ToStatus   Status
}

// EventName returns the event type identifier.
func (e PetStatusChanged) EventName() string {
	return "pets.pet.status_changed"
}
