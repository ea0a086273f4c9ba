package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.InterestRepository = (*InterestRepository)(nil)

// InterestRepository stores one swipe per (user, pet) in PostgreSQL.
type InterestRepository struct {
	db *gorm.DB
}

// NewInterestRepository wires a PostgreSQL-backed interest store.
func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{db: db}
}

type interestRecord struct {
	UserID       string    `gorm:"primaryKey;column:user_id;size:128"`
	PetID        int64     `gorm:"primaryKey;column:pet_id"`
	InterestType string    `gorm:"column:interest_type;type:varchar(16)"`
	SwipedAt     time.Time `gorm:"column:swiped_at;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (interestRecord) TableName() string { return "pet_interests" }

// Upsert replaces any earlier swipe by the same user on the same pet.
func (r *InterestRepository) Upsert(ctx context.Context, interest *domain.PetInterest) (*projection.Projection[*domain.PetInterest], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if interest == nil {
		return nil, errors.New("cannot save nil interest")
	}
	record := interestRecord{
		UserID:       interest.UserID,
		PetID:        interest.PetID,
		InterestType: string(interest.Type),
		SwipedAt:     interest.CreatedAt,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "pet_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"interest_type": record.InterestType,
				"swiped_at":     record.SwipedAt,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	var stored interestRecord
	if err := r.db.WithContext(ctx).
		First(&stored, "user_id = ? AND pet_id = ?", interest.UserID, interest.PetID).Error; err != nil {
		return nil, err
	}
	return stored.toProjection(), nil
}

// FindByUser returns the user's swipes, newest first.
func (r *InterestRepository) FindByUser(ctx context.Context, userID string) ([]*projection.Projection[*domain.PetInterest], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []interestRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("swiped_at DESC, pet_id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.PetInterest], 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list, nil
}

func (r *interestRecord) toProjection() *projection.Projection[*domain.PetInterest] {
	return &projection.Projection[*domain.PetInterest]{
		Entity: &domain.PetInterest{
			UserID:    r.UserID,
			PetID:     r.PetID,
			Type:      domain.InterestType(r.InterestType),
			CreatedAt: r.SwipedAt,
		},
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}

func (r *InterestRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres interest repository not configured")
	}
	return nil
}
