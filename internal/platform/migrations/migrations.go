package migrations

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// terminalStatuses are the application statuses that release a (user, pet) pair.
var terminalStatuses = []string{"adopted", "rejected", "withdrawn", "unavailable"}

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&petRecord{},
		&applicationRecord{},
		&interestRecord{},
		&idempotencyRecord{},
	); err != nil {
		return err
	}
	return db.Exec(activeApplicationIndexSQL()).Error
}

// activeApplicationIndexSQL allows at most one non-terminal application per (user, pet).
func activeApplicationIndexSQL() string {
	quoted := make([]string, 0, len(terminalStatuses))
	for _, status := range terminalStatuses {
		quoted = append(quoted, "'"+status+"'")
	}
	return fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_adoption_applications_active_user_pet "+
			"ON adoption_applications (user_id, pet_id) WHERE status NOT IN (%s)",
		strings.Join(quoted, ", "),
	)
}

// Pet schema mirrors the pets Postgres adapter.
type petRecord struct {
	ID          int64          `gorm:"primaryKey;column:id;autoIncrement"`
	Name        string         `gorm:"column:name"`
	Species     string         `gorm:"column:species;type:varchar(64);index"`
	Breed       string         `gorm:"column:breed"`
	AgeMonths   int            `gorm:"column:age_months"`
	Description string         `gorm:"column:description;type:text"`
	PhotoURLs   pq.StringArray `gorm:"column:photo_urls;type:text[]"`
	Status      string         `gorm:"column:status;type:varchar(32);index"`
	TagIDs      pq.Int64Array  `gorm:"column:tag_ids;type:bigint[]"`
	TagNames    pq.StringArray `gorm:"column:tag_names;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (petRecord) TableName() string { return "pets" }

// Application schema mirrors the adoptions Postgres adapter.
type applicationRecord struct {
	ID                        string     `gorm:"primaryKey;column:id;size:64"`
	UserID                    string     `gorm:"column:user_id;size:128;index"`
	PetID                     int64      `gorm:"column:pet_id;index"`
	Status                    string     `gorm:"column:status;type:varchar(32);index"`
	ApplicantFullName         string     `gorm:"column:applicant_full_name"`
	ApplicantEmail            string     `gorm:"column:applicant_email"`
	ApplicantPhone            string     `gorm:"column:applicant_phone"`
	ApplicantAddress          string     `gorm:"column:applicant_address"`
	ApplicantEmploymentStatus string     `gorm:"column:applicant_employment_status"`
	ApplicantHousingType      string     `gorm:"column:applicant_housing_type;type:varchar(16)"`
	ApplicantHasYard          bool       `gorm:"column:applicant_has_yard"`
	ApplicantOtherPets        string     `gorm:"column:applicant_other_pets;type:text"`
	ApplicantExperience       string     `gorm:"column:applicant_experience;type:text"`
	ApplicantMotivation       string     `gorm:"column:applicant_motivation;type:text"`
	AppliedAt                 time.Time  `gorm:"column:applied_at;index"`
	ReviewedAt                *time.Time `gorm:"column:reviewed_at"`
	ApprovedAt                *time.Time `gorm:"column:approved_at"`
	MeetingScheduledAt        *time.Time `gorm:"column:meeting_scheduled_at"`
	AdoptedAt                 *time.Time `gorm:"column:adopted_at"`
	ShelterNotes              string     `gorm:"column:shelter_notes;type:text"`
	UserNotes                 string     `gorm:"column:user_notes;type:text"`
	CreatedAt                 time.Time  `gorm:"column:created_at"`
	UpdatedAt                 time.Time  `gorm:"column:updated_at"`
}

func (applicationRecord) TableName() string { return "adoption_applications" }

// Interest schema mirrors the swipe store.
type interestRecord struct {
	UserID       string    `gorm:"primaryKey;column:user_id;size:128"`
	PetID        int64     `gorm:"primaryKey;column:pet_id"`
	InterestType string    `gorm:"column:interest_type;type:varchar(16)"`
	SwipedAt     time.Time `gorm:"column:swiped_at;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (interestRecord) TableName() string { return "pet_interests" }

// Idempotency schema mirrors the submission idempotency store.
type idempotencyRecord struct {
	Key           string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash   string    `gorm:"column:request_hash;size:128"`
	ApplicationID string    `gorm:"column:application_id;size:64"`
	CreatedAt     time.Time `gorm:"column:created_at;index"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "adoption_idempotency_keys" }
