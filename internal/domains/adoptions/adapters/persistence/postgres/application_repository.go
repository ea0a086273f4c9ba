package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)

// ApplicationRepository persists adoption applications in PostgreSQL using GORM-mapped columns.
// The schema (including the partial unique index on active applications) is owned by the
// migrations package.
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

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

func newApplicationRecord(app *domain.Application) applicationRecord {
	info := app.Applicant
	return applicationRecord{
		ID:                        app.ID,
		UserID:                    app.UserID,
		PetID:                     app.PetID,
		Status:                    string(app.Status),
		ApplicantFullName:         info.FullName,
		ApplicantEmail:            info.Email,
		ApplicantPhone:            info.Phone,
		ApplicantAddress:          info.Address,
		ApplicantEmploymentStatus: info.EmploymentStatus,
		ApplicantHousingType:      string(info.HousingType),
		ApplicantHasYard:          info.HasYard,
		ApplicantOtherPets:        info.OtherPets,
		ApplicantExperience:       info.Experience,
		ApplicantMotivation:       info.Motivation,
		AppliedAt:                 app.AppliedAt,
		ReviewedAt:                app.ReviewedAt,
		ApprovedAt:                app.ApprovedAt,
		MeetingScheduledAt:        app.MeetingScheduledAt,
		AdoptedAt:                 app.AdoptedAt,
		ShelterNotes:              app.ShelterNotes,
		UserNotes:                 app.UserNotes,
	}
}

// Save inserts or updates an application. Applicant info is written on insert only.
func (r *ApplicationRepository) Save(ctx context.Context, app *domain.Application) (*projection.Projection[*domain.Application], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errors.New("cannot save nil application")
	}
	record := newApplicationRecord(app)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":               record.Status,
				"reviewed_at":          record.ReviewedAt,
				"approved_at":          record.ApprovedAt,
				"meeting_scheduled_at": record.MeetingScheduledAt,
				"adopted_at":           record.AdoptedAt,
				"shelter_notes":        record.ShelterNotes,
				"user_notes":           record.UserNotes,
				"updated_at":           gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrActiveApplicationExists
		}
		return nil, err
	}
	return r.GetByID(ctx, app.ID)
}

// Update writes the mutable columns of app inside a transaction that first locks every
// application row for the same pet, so competing transitions on one pet run one at a time.
// The write is conditional on the status the caller loaded.
func (r *ApplicationRepository) Update(ctx context.Context, app *domain.Application, expected domain.Status) (*projection.Projection[*domain.Application], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if app == nil {
		return nil, errors.New("cannot update nil application")
	}
	record := newApplicationRecord(app)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var siblings []applicationRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pet_id = ?", app.PetID).
			Order("id").
			Find(&siblings).Error; err != nil {
			return err
		}
		current, found := lo.Find(siblings, func(sibling applicationRecord) bool {
			return sibling.ID == app.ID
		})
		if !found {
			return ports.ErrNotFound
		}
		if domain.Status(current.Status) != expected {
			return ports.ErrStaleApplication
		}
		others := lo.Map(siblings, func(sibling applicationRecord, _ int) *domain.Application {
			return sibling.toProjection().Entity
		})
		if domain.CompetingLock(app, others) != nil {
			return ports.ErrPetLocked
		}

		result := tx.Model(&applicationRecord{}).
			Where("id = ? AND status = ?", app.ID, string(expected)).
			Updates(map[string]any{
				"status":               record.Status,
				"reviewed_at":          record.ReviewedAt,
				"approved_at":          record.ApprovedAt,
				"meeting_scheduled_at": record.MeetingScheduledAt,
				"adopted_at":           record.AdoptedAt,
				"shelter_notes":        record.ShelterNotes,
				"user_notes":           record.UserNotes,
				"updated_at":           gorm.Expr("NOW()"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrStaleApplication
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrActiveApplicationExists
		}
		return nil, err
	}
	return r.GetByID(ctx, app.ID)
}

// GetByID fetches an application by identifier.
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Application], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record applicationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// List returns applications matching the filter ordered by submission time.
func (r *ApplicationRepository) List(ctx context.Context, filter ports.ApplicationFilter) ([]*projection.Projection[*domain.Application], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&applicationRecord{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.PetID != 0 {
		query = query.Where("pet_id = ?", filter.PetID)
	}
	var records []applicationRecord
	if err := query.Order("applied_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.Application], 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list, nil
}

// PetIDs returns the distinct pets referenced by stored applications, ascending.
func (r *ApplicationRepository) PetIDs(ctx context.Context) ([]int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&applicationRecord{}).
		Distinct("pet_id").
		Order("pet_id").
		Pluck("pet_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *applicationRecord) toProjection() *projection.Projection[*domain.Application] {
	app := &domain.Application{
		ID:     r.ID,
		UserID: r.UserID,
		PetID:  r.PetID,
		Status: domain.Status(r.Status),
		Applicant: domain.ApplicantInfo{
			FullName:         r.ApplicantFullName,
			Email:            r.ApplicantEmail,
			Phone:            r.ApplicantPhone,
			Address:          r.ApplicantAddress,
			EmploymentStatus: r.ApplicantEmploymentStatus,
			HousingType:      domain.HousingType(r.ApplicantHousingType),
			HasYard:          r.ApplicantHasYard,
			OtherPets:        r.ApplicantOtherPets,
			Experience:       r.ApplicantExperience,
			Motivation:       r.ApplicantMotivation,
		},
		AppliedAt:          r.AppliedAt,
		ReviewedAt:         r.ReviewedAt,
		ApprovedAt:         r.ApprovedAt,
		MeetingScheduledAt: r.MeetingScheduledAt,
		AdoptedAt:          r.AdoptedAt,
		ShelterNotes:       r.ShelterNotes,
		UserNotes:          r.UserNotes,
	}
	return &projection.Projection[*domain.Application]{
		Entity:   app.Clone(),
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}

func (r *ApplicationRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres application repository not configured")
	}
	return nil
}
