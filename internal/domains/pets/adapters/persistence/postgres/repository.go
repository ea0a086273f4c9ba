package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists pets in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

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

func newPetRecord(p *domain.Pet) petRecord {
	return petRecord{
		ID:          p.ID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		AgeMonths:   p.AgeMonths,
		Description: p.Description,
		PhotoURLs:   copyStringArray(p.PhotoURLs),
		Status:      string(p.Status),
		TagIDs:      extractTagIDs(p.Tags),
		TagNames:    extractTagNames(p.Tags),
	}
}

// Save inserts or updates a pet aggregate. A zero id is assigned by the database sequence.
func (r *Repository) Save(ctx context.Context, pet *domain.Pet) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	record := newPetRecord(pet)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"species":     record.Species,
				"breed":       record.Breed,
				"age_months":  record.AgeMonths,
				"description": record.Description,
				"photo_urls":  record.PhotoURLs,
				"status":      record.Status,
				"tag_ids":     record.TagIDs,
				"tag_names":   record.TagNames,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a pet by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record petRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Delete removes a pet by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&petRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindByStatus returns pets matching any provided status.
func (r *Repository) FindByStatus(ctx context.Context, statuses []domain.Status) ([]*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return nil, nil
	}
	args := make([]string, 0, len(statuses))
	for _, s := range statuses {
		args = append(args, string(s))
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).
		Where("status IN ?", args).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// FindByTags returns pets that contain any of the provided tag names (case insensitive).
func (r *Repository) FindByTags(ctx context.Context, tags []string) ([]*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, nil
	}
	lowered := make([]string, 0, len(tags))
	for _, tag := range tags {
		lowered = append(lowered, strings.ToLower(tag))
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM unnest(tag_names) AS tag WHERE lower(tag) = ANY(?))", pq.Array(lowered)).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// List returns every persisted pet.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Pet], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []petRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

func recordsToProjections(records []petRecord) []*projection.Projection[*domain.Pet] {
	list := make([]*projection.Projection[*domain.Pet], 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list
}

func (r *petRecord) toProjection() *projection.Projection[*domain.Pet] {
	pet := &domain.Pet{
		ID:          r.ID,
		Name:        r.Name,
		Species:     r.Species,
		Breed:       r.Breed,
		AgeMonths:   r.AgeMonths,
		Description: r.Description,
		Status:      domain.Status(r.Status),
	}
	if len(r.PhotoURLs) > 0 {
		pet.PhotoURLs = append([]string{}, r.PhotoURLs...)
	}
	if n := max(len(r.TagIDs), len(r.TagNames)); n > 0 {
		tags := make([]domain.Tag, 0, n)
		for i := 0; i < n; i++ {
			var tag domain.Tag
			if i < len(r.TagIDs) {
				tag.ID = r.TagIDs[i]
			}
			if i < len(r.TagNames) {
				tag.Name = r.TagNames[i]
			}
			tags = append(tags, tag)
		}
		pet.Tags = tags
	}
	return &projection.Projection[*domain.Pet]{
		Entity:   pet,
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres repository not configured")
	}
	return nil
}

func extractTagNames(tags []domain.Tag) pq.StringArray {
	if len(tags) == 0 {
		return nil
	}
	arr := make(pq.StringArray, 0, len(tags))
	for _, tag := range tags {
		arr = append(arr, tag.Name)
	}
	return arr
}

func extractTagIDs(tags []domain.Tag) pq.Int64Array {
	if len(tags) == 0 {
		return nil
	}
	arr := make(pq.Int64Array, 0, len(tags))
	for _, tag := range tags {
		arr = append(arr, tag.ID)
	}
	return arr
}

func copyStringArray(values []string) pq.StringArray {
	if len(values) == 0 {
		return nil
	}
	return pq.StringArray(append([]string{}, values...))
}
