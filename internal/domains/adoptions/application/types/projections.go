package types

import (
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

// ApplicationProjection transports an application together with its persistence metadata.
type ApplicationProjection = projection.Projection[*domain.Application]

// InterestProjection transports a swipe record with persistence metadata.
type InterestProjection = projection.Projection[*domain.PetInterest]

// PetAvailability summarizes whether a pet can take new applications.
type PetAvailability struct {
	PetID                int64
	Available            bool
	ListingStatus        domain.ListingStatus
	LockingApplicationID string
	ActiveApplications   int
}

// StatusDescriptor bundles every derived property of a status for display.
type StatusDescriptor struct {
	Status            domain.Status
	Known             bool
	Message           string
	Color             domain.Color
	Progress          int
	NextStatuses      []domain.Status
	CanUserTakeAction bool
	Terminal          bool
}

// DescribeStatus derives the descriptor for status. Unknown statuses get the degraded default.
func DescribeStatus(status domain.Status) StatusDescriptor {
	known := status.IsValid()
	return StatusDescriptor{
		Status:            status,
		Known:             known,
		Message:           domain.StatusMessage(status),
		Color:             domain.StatusColor(status),
		Progress:          domain.ProgressPercentage(status),
		NextStatuses:      domain.NextStatuses(status),
		CanUserTakeAction: domain.CanUserTakeAction(status),
		Terminal:          known && status.IsTerminal(),
	}
}

// DescribeAllStatuses returns descriptors in workflow order.
func DescribeAllStatuses() []StatusDescriptor {
	statuses := domain.AllStatuses()
	result := make([]StatusDescriptor, 0, len(statuses))
	for _, status := range statuses {
		result = append(result, DescribeStatus(status))
	}
	return result
}
