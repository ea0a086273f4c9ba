package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the position of an adoption application inside the adoption flow.
type Status string

const (
	StatusBrowsing         Status = "browsing"
	StatusInterested       Status = "interested"
	StatusApplying         Status = "applying"
	StatusApplicationSent  Status = "application_sent"
	StatusUnderReview      Status = "under_review"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusMeetScheduled    Status = "meet_scheduled"
	StatusMeetingCompleted Status = "meeting_completed"
	StatusAdoptionApproved Status = "adoption_approved"
	StatusAdopted          Status = "adopted"
	StatusWithdrawn        Status = "withdrawn"
	StatusUnavailable      Status = "unavailable"
)

// Color is a display token used by clients to render a status badge.
type Color string

const (
	ColorDiscovery      Color = "#4F8EF7"
	ColorInProgress     Color = "#F5A623"
	ColorInReview       Color = "#9B59B6"
	ColorSuccessPending Color = "#2ECC71"
	ColorCelebration    Color = "#FF6FA5"
	ColorNeutral        Color = "#95A5A6"
)

// UnknownStatusMessage is rendered for statuses outside the enumeration.
const UnknownStatusMessage = "Unknown status"

// ErrInvalidTransition is matched by every *InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a requested status that the transition table does not allow.
type InvalidTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

func (e *InvalidTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("%s: %q is terminal, cannot move to %q", ErrInvalidTransition, e.From, e.To)
	}
	allowed := make([]string, 0, len(e.Allowed))
	for _, s := range e.Allowed {
		allowed = append(allowed, string(s))
	}
	return fmt.Sprintf("%s: %q cannot move to %q (allowed: %s)", ErrInvalidTransition, e.From, e.To, strings.Join(allowed, ", "))
}

// Is lets errors.Is match against ErrInvalidTransition.
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// happyPath is the first-listed route from browsing to adopted.
var happyPath = [...]Status{
	StatusBrowsing,
	StatusInterested,
	StatusApplying,
	StatusApplicationSent,
	StatusUnderReview,
	StatusApproved,
	StatusMeetScheduled,
	StatusMeetingCompleted,
	StatusAdoptionApproved,
	StatusAdopted,
}

// AllStatuses lists every status in workflow order.
func AllStatuses() []Status {
	return []Status{
		StatusBrowsing,
		StatusInterested,
		StatusApplying,
		StatusApplicationSent,
		StatusUnderReview,
		StatusApproved,
		StatusRejected,
		StatusMeetScheduled,
		StatusMeetingCompleted,
		StatusAdoptionApproved,
		StatusAdopted,
		StatusWithdrawn,
		StatusUnavailable,
	}
}

// ParseStatus normalizes raw input and reports whether it names a known status.
func ParseStatus(raw string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	return status, status.IsValid()
}

// IsValid reports whether s belongs to the enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusBrowsing, StatusInterested, StatusApplying, StatusApplicationSent,
		StatusUnderReview, StatusApproved, StatusRejected, StatusMeetScheduled,
		StatusMeetingCompleted, StatusAdoptionApproved, StatusAdopted,
		StatusWithdrawn, StatusUnavailable:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether s has no outgoing transition.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusAdopted, StatusRejected, StatusWithdrawn, StatusUnavailable:
		return true
	default:
		return false
	}
}

// NextStatuses returns the statuses that may legally follow current, in table order.
// Terminal and unknown statuses yield an empty slice.
func NextStatuses(current Status) []Status {
	switch current {
	case StatusBrowsing:
		return []Status{StatusInterested}
	case StatusInterested:
		return []Status{StatusApplying, StatusBrowsing}
	case StatusApplying:
		return []Status{StatusApplicationSent, StatusWithdrawn}
	case StatusApplicationSent:
		return []Status{StatusUnderReview, StatusWithdrawn}
	case StatusUnderReview:
		return []Status{StatusApproved, StatusRejected}
	case StatusApproved:
		return []Status{StatusMeetScheduled, StatusWithdrawn}
	case StatusMeetScheduled:
		return []Status{StatusMeetingCompleted, StatusWithdrawn}
	case StatusMeetingCompleted:
		return []Status{StatusAdoptionApproved, StatusRejected}
	case StatusAdoptionApproved:
		return []Status{StatusAdopted}
	default:
		return []Status{}
	}
}

// CanTransition reports whether requested is listed for current.
func CanTransition(current, requested Status) bool {
	for _, next := range NextStatuses(current) {
		if next == requested {
			return true
		}
	}
	return false
}

// AttemptTransition returns requested when the table allows it, or an *InvalidTransitionError.
func AttemptTransition(current, requested Status) (Status, error) {
	if CanTransition(current, requested) {
		return requested, nil
	}
	return current, &InvalidTransitionError{From: current, To: requested, Allowed: NextStatuses(current)}
}

// CanUserTakeAction reports whether the applicant, rather than the shelter, owns the next move.
func CanUserTakeAction(status Status) bool {
	switch status {
	case StatusBrowsing, StatusInterested, StatusApplying, StatusApproved, StatusMeetScheduled:
		return true
	default:
		return false
	}
}

// StatusMessage returns the user-facing sentence for status.
func StatusMessage(status Status) string {
	switch status {
	case StatusBrowsing:
		return "Keep browsing to find your perfect match"
	case StatusInterested:
		return "You've shown interest in this pet"
	case StatusApplying:
		return "Complete your adoption application"
	case StatusApplicationSent:
		return "Your application has been sent to the shelter"
	case StatusUnderReview:
		return "Your application is being reviewed"
	case StatusApproved:
		return "Your application was approved! Schedule a meet and greet"
	case StatusRejected:
		return "Unfortunately, your application was not approved"
	case StatusMeetScheduled:
		return "Your meet and greet is scheduled"
	case StatusMeetingCompleted:
		return "Meeting completed, waiting for the shelter's final decision"
	case StatusAdoptionApproved:
		return "Adoption approved! Get ready to bring your pet home"
	case StatusAdopted:
		return "Congratulations on your new family member!"
	case StatusWithdrawn:
		return "You withdrew this application"
	case StatusUnavailable:
		return "This pet is no longer available"
	default:
		return UnknownStatusMessage
	}
}

// StatusColor groups statuses into display buckets. Unknown statuses render neutral.
func StatusColor(status Status) Color {
	switch status {
	case StatusBrowsing, StatusInterested:
		return ColorDiscovery
	case StatusApplying, StatusApplicationSent:
		return ColorInProgress
	case StatusUnderReview:
		return ColorInReview
	case StatusApproved, StatusMeetScheduled, StatusMeetingCompleted, StatusAdoptionApproved:
		return ColorSuccessPending
	case StatusAdopted:
		return ColorCelebration
	default:
		return ColorNeutral
	}
}

// ProgressPercentage places status on the happy path, 0 for browsing and 100 for adopted.
// Failure terminals and unknown statuses report 0.
func ProgressPercentage(status Status) int {
	last := len(happyPath) - 1
	for i, step := range happyPath {
		if step == status {
			return i * 100 / last
		}
	}
	return 0
}
