package domain

import "time"

// Event is the base interface for all adoption domain events.
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

// ApplicationSubmitted is raised when a new application enters the flow.
type ApplicationSubmitted struct {
	BaseEvent
	ApplicationID string
	UserID        string
	PetID         int64
	Status        Status
}

// EventName returns the event type identifier.
func (e ApplicationSubmitted) EventName() string {
	return "adoptions.application.submitted"
}

// ApplicationStatusChanged is raised on every accepted transition.
type ApplicationStatusChanged struct {
	BaseEvent
	ApplicationID string
	PetID         int64
	FromStatus    Status
	ToStatus      Status
}

// EventName returns the event type identifier.
func (e ApplicationStatusChanged) EventName() string {
	return "adoptions.application.status_changed"
}

// AggregateWithEvents is implemented by aggregates that track domain events.
type AggregateWithEvents interface {
	Events() []Event
	ClearEvents()
}
