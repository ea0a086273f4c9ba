package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Status represents the listing state of a pet inside the adoption catalog.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

// IsValid reports whether the status is a known listing state.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted:
		return true
	default:
		return false
	}
}

// Tag is a lightweight marker attached to pets for filtering.
type Tag struct {
	ID   int64
	Name string
}

// Pet represents the aggregate managed by the pets bounded context.
type Pet struct {
	ID          int64
	Name        string
	Species     string
	Breed       string
	AgeMonths   int
	Description string
	PhotoURLs   []string
	Tags        []Tag
	Status      Status
}

var (
	ErrEmptyName     = errors.New("pet name is required")
	ErrEmptySpecies  = errors.New("pet species is required")
	ErrInvalidAge    = errors.New("pet age must be greater or equal to zero")
	ErrInvalidStatus = errors.New("pet status must be one of available, pending, adopted")
)

// NewPet validates the invariants and builds a new Pet aggregate listed as available.
func NewPet(id int64, name, species string) (*Pet, error) {
	p := &Pet{ID: id, Status: StatusAvailable}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.ChangeSpecies(species); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// ChangeSpecies stores the species in lower case.
func (p *Pet) ChangeSpecies(species string) error {
	species = strings.ToLower(strings.TrimSpace(species))
	if species == "" {
		return ErrEmptySpecies
	}
	p.Species = species
	return nil
}

// UpdateAge stores the age in months.
func (p *Pet) UpdateAge(months int) error {
	if months < 0 {
		return ErrInvalidAge
	}
	p.AgeMonths = months
	return nil
}

// UpdateStatus validates known listing values and returns the previous status.
func (p *Pet) UpdateStatus(status Status) (Status, error) {
	status = Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.IsValid() {
		return p.Status, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	previous := p.Status
	p.Status = status
	return previous, nil
}

// ReplacePhotos swaps the photo set.
func (p *Pet) ReplacePhotos(urls []string) {
	p.PhotoURLs = append([]string{}, urls...)
}

// ReplaceTags swaps the current tag set.
func (p *Pet) ReplaceTags(tags []Tag) {
	p.Tags = append([]Tag{}, tags...)
}

// HasTag reports whether any tag matches name case-insensitively.
func (p *Pet) HasTag(name string) bool {
	for _, tag := range p.Tags {
		if strings.EqualFold(tag.Name, name) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (p *Pet) Clone() *Pet {
	if p == nil {
		return nil
	}
	clone := *p
	if len(p.PhotoURLs) > 0 {
		clone.PhotoURLs = append([]string{}, p.PhotoURLs...)
	}
	if len(p.Tags) > 0 {
		clone.Tags = append([]Tag{}, p.Tags...)
	}
	return &clone
}
