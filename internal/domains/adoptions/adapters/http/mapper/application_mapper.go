package mapper

import (
	"time"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
)

// ApplicantInfo is the applicant questionnaire as it travels over HTTP.
type ApplicantInfo struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	EmploymentStatus string `json:"employmentStatus,omitempty"`
	HousingType      string `json:"housingType"`
	HasYard          bool   `json:"hasYard"`
	OtherPets        string `json:"otherPets,omitempty"`
	Experience       string `json:"experience,omitempty"`
	Motivation       string `json:"motivation,omitempty"`
}

// SubmitApplication is the POST /adoptions payload.
type SubmitApplication struct {
	UserID        string        `json:"userId"`
	PetID         int64         `json:"petId"`
	InitialStatus string        `json:"initialStatus,omitempty"`
	ApplicantInfo ApplicantInfo `json:"applicantInfo"`
	UserNotes     string        `json:"userNotes,omitempty"`
}

// TransitionRequest asks for a status change.
type TransitionRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// NotesUpdate keeps field presence so an empty string clears the notes.
type NotesUpdate struct {
	ShelterNotes *string `json:"shelterNotes,omitempty"`
	UserNotes    *string `json:"userNotes,omitempty"`
}

// StatusDescriptor exposes every derived property of a status.
type StatusDescriptor struct {
	Status            string   `json:"status"`
	Known             bool     `json:"known"`
	Message           string   `json:"message"`
	Color             string   `json:"color"`
	Progress          int      `json:"progress"`
	NextStatuses      []string `json:"nextStatuses"`
	CanUserTakeAction bool     `json:"canUserTakeAction"`
	Terminal          bool     `json:"terminal"`
}

// Application is the HTTP representation of an adoption application.
type Application struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"userId"`
	PetID              int64            `json:"petId"`
	Status             string           `json:"status"`
	StatusInfo         StatusDescriptor `json:"statusInfo"`
	ApplicantInfo      ApplicantInfo    `json:"applicantInfo"`
	AppliedAt          time.Time        `json:"appliedAt"`
	ReviewedAt         *time.Time       `json:"reviewedAt,omitempty"`
	ApprovedAt         *time.Time       `json:"approvedAt,omitempty"`
	MeetingScheduledAt *time.Time       `json:"meetingScheduledAt,omitempty"`
	AdoptedAt          *time.Time       `json:"adoptedAt,omitempty"`
	ShelterNotes       string           `json:"shelterNotes,omitempty"`
	UserNotes          string           `json:"userNotes,omitempty"`
	CreatedAt          time.Time        `json:"createdAt,omitempty"`
	UpdatedAt          time.Time        `json:"updatedAt,omitempty"`
}

// PetAvailability reports whether a pet still accepts applications.
type PetAvailability struct {
	PetID                int64  `json:"petId"`
	Available            bool   `json:"available"`
	ListingStatus        string `json:"listingStatus"`
	LockingApplicationID string `json:"lockingApplicationId,omitempty"`
	ActiveApplications   int    `json:"activeApplications"`
}

// ToSubmitInput converts the transport payload into the application command.
func ToSubmitInput(payload SubmitApplication, idempotencyKey string) adoptiontypes.SubmitApplicationInput {
	info := payload.ApplicantInfo
	return adoptiontypes.SubmitApplicationInput{
		UserID:        payload.UserID,
		PetID:         payload.PetID,
		InitialStatus: payload.InitialStatus,
		Applicant: adoptiontypes.ApplicantInput{
			FullName:         info.FullName,
			Email:            info.Email,
			Phone:            info.Phone,
			Address:          info.Address,
			EmploymentStatus: info.EmploymentStatus,
			HousingType:      info.HousingType,
			HasYard:          info.HasYard,
			OtherPets:        info.OtherPets,
			Experience:       info.Experience,
			Motivation:       info.Motivation,
		},
		UserNotes:      payload.UserNotes,
		IdempotencyKey: idempotencyKey,
	}
}

// FromDescriptor maps a status descriptor for transport.
func FromDescriptor(d adoptiontypes.StatusDescriptor) StatusDescriptor {
	next := make([]string, 0, len(d.NextStatuses))
	for _, status := range d.NextStatuses {
		next = append(next, string(status))
	}
	return StatusDescriptor{
		Status:            string(d.Status),
		Known:             d.Known,
		Message:           d.Message,
		Color:             string(d.Color),
		Progress:          d.Progress,
		NextStatuses:      next,
		CanUserTakeAction: d.CanUserTakeAction,
		Terminal:          d.Terminal,
	}
}

// FromDescriptorList maps every descriptor in order.
func FromDescriptorList(list []adoptiontypes.StatusDescriptor) []StatusDescriptor {
	result := make([]StatusDescriptor, 0, len(list))
	for _, d := range list {
		result = append(result, FromDescriptor(d))
	}
	return result
}

// FromDomainApplication maps the aggregate for transport.
func FromDomainApplication(app *domain.Application) Application {
	info := app.Applicant
	return Application{
		ID:         app.ID,
		UserID:     app.UserID,
		PetID:      app.PetID,
		Status:     string(app.Status),
		StatusInfo: FromDescriptor(adoptiontypes.DescribeStatus(app.Status)),
		ApplicantInfo: ApplicantInfo{
			FullName:         info.FullName,
			Email:            info.Email,
			Phone:            info.Phone,
			Address:          info.Address,
			EmploymentStatus: info.EmploymentStatus,
			HousingType:      string(info.HousingType),
			HasYard:          info.HasYard,
			OtherPets:        info.OtherPets,
			Experience:       info.Experience,
			Motivation:       info.Motivation,
		},
		AppliedAt:          app.AppliedAt,
		ReviewedAt:         app.ReviewedAt,
		ApprovedAt:         app.ApprovedAt,
		MeetingScheduledAt: app.MeetingScheduledAt,
		AdoptedAt:          app.AdoptedAt,
		ShelterNotes:       app.ShelterNotes,
		UserNotes:          app.UserNotes,
	}
}

// FromProjection maps a projection into a transport application enriched with metadata.
func FromProjection(projection *adoptiontypes.ApplicationProjection) Application {
	app := FromDomainApplication(projection.Entity)
	app.CreatedAt = projection.Metadata.CreatedAt
	app.UpdatedAt = projection.Metadata.UpdatedAt
	return app
}

// FromProjectionList maps a slice of projections.
func FromProjectionList(list []*adoptiontypes.ApplicationProjection) []Application {
	result := make([]Application, 0, len(list))
	for _, projection := range list {
		result = append(result, FromProjection(projection))
	}
	return result
}

// FromAvailability maps an availability summary for transport.
func FromAvailability(a *adoptiontypes.PetAvailability) PetAvailability {
	return PetAvailability{
		PetID:                a.PetID,
		Available:            a.Available,
		ListingStatus:        string(a.ListingStatus),
		LockingApplicationID: a.LockingApplicationID,
		ActiveApplications:   a.ActiveApplications,
	}
}
