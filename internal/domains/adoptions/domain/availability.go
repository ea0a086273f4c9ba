package domain

import "github.com/samber/lo"

// IsPetAvailable reports whether petID can receive new applications. Applications for other
// pets and those that were rejected, withdrawn or marked unavailable are ignored; any remaining
// application past the meeting stage locks the pet.
func IsPetAvailable(petID int64, applications []*Application) bool {
	return LockingApplication(petID, applications) == nil
}

// LockingApplication returns the first application that keeps petID off the market, or nil.
func LockingApplication(petID int64, applications []*Application) *Application {
	considered := lo.Filter(applications, func(app *Application, _ int) bool {
		return app != nil && app.PetID == petID && !isDiscarded(app.Status)
	})
	locking, found := lo.Find(considered, func(app *Application) bool {
		return locksPet(app.Status)
	})
	if !found {
		return nil
	}
	return locking
}

// CompetingLock returns the application, other than app, that already locks app's pet when app
// itself is moving into a locking status. It returns nil when app may take the lock.
func CompetingLock(app *Application, applications []*Application) *Application {
	if app == nil || !app.Status.LocksPet() {
		return nil
	}
	others := lo.Filter(applications, func(other *Application, _ int) bool {
		return other != nil && other.ID != app.ID
	})
	return LockingApplication(app.PetID, others)
}

// IsPetAdopted reports whether any application for petID reached adopted.
func IsPetAdopted(petID int64, applications []*Application) bool {
	return lo.ContainsBy(applications, func(app *Application) bool {
		return app != nil && app.PetID == petID && app.Status == StatusAdopted
	})
}

func isDiscarded(status Status) bool {
	switch status {
	case StatusRejected, StatusWithdrawn, StatusUnavailable:
		return true
	default:
		return false
	}
}

// LocksPet reports whether an application in s keeps its pet off the market.
func (s Status) LocksPet() bool {
	return locksPet(s)
}

func locksPet(status Status) bool {
	switch status {
	case StatusAdopted, StatusAdoptionApproved, StatusMeetingCompleted:
		return true
	default:
		return false
	}
}

// ListingStatus is how a pet should appear in the catalog given its applications.
type ListingStatus string

const (
	ListingAvailable ListingStatus = "available"
	ListingPending   ListingStatus = "pending"
	ListingAdopted   ListingStatus = "adopted"
)

// ListingStatusFor derives the catalog status for petID: adopted wins over pending.
func ListingStatusFor(petID int64, applications []*Application) ListingStatus {
	if IsPetAdopted(petID, applications) {
		return ListingAdopted
	}
	if !IsPetAvailable(petID, applications) {
		return ListingPending
	}
	return ListingAvailable
}
