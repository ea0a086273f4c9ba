package mapper

import (
	"time"

	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

// Tag is the HTTP representation of a pet tag.
type Tag struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// MutationPet captures inbound payloads for create/update flows while preserving field presence.
type MutationPet struct {
	ID          int64     `json:"id,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Species     *string   `json:"species,omitempty"`
	Breed       *string   `json:"breed,omitempty"`
	AgeMonths   *int      `json:"ageMonths,omitempty"`
	Description *string   `json:"description,omitempty"`
	PhotoURLs   *[]string `json:"photoUrls,omitempty"`
	Tags        *[]Tag    `json:"tags,omitempty"`
	Status      *string   `json:"status,omitempty"`
}

// Pet is the HTTP representation used for mapping between transport and domain responses.
type Pet struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	AgeMonths   int       `json:"ageMonths"`
	Description string    `json:"description,omitempty"`
	PhotoURLs   []string  `json:"photoUrls"`
	Tags        []Tag     `json:"tags,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// FromDomainPet maps a domain aggregate into a transport Pet.
func FromDomainPet(p *domain.Pet) Pet {
	var tags []Tag
	for _, t := range p.Tags {
		tags = append(tags, Tag{ID: t.ID, Name: t.Name})
	}
	return Pet{
		ID:          p.ID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		AgeMonths:   p.AgeMonths,
		Description: p.Description,
		PhotoURLs:   append([]string{}, p.PhotoURLs...),
		Tags:        tags,
		Status:      string(p.Status),
	}
}

// ToMutationInput converts a mutation payload into an application mutation input while preserving field presence.
func ToMutationInput(model MutationPet) petstypes.PetMutationInput {
	input := petstypes.PetMutationInput{
		ID:          model.ID,
		Name:        cloneString(model.Name),
		Species:     cloneString(model.Species),
		Breed:       cloneString(model.Breed),
		Description: cloneString(model.Description),
		Status:      cloneString(model.Status),
	}
	if model.AgeMonths != nil {
		age := *model.AgeMonths
		input.AgeMonths = &age
	}
	if model.PhotoURLs != nil {
		urls := append([]string{}, (*model.PhotoURLs)...)
		input.PhotoURLs = &urls
	}
	if model.Tags != nil {
		tags := make([]petstypes.TagInput, 0, len(*model.Tags))
		for _, tag := range *model.Tags {
			tags = append(tags, petstypes.TagInput{ID: tag.ID, Name: tag.Name})
		}
		input.Tags = &tags
	}
	return input
}

// FromProjection maps a projection into a transport pet enriched with metadata.
func FromProjection(projection *petstypes.PetProjection) Pet {
	pet := FromDomainPet(projection.Entity)
	pet.CreatedAt = projection.Metadata.CreatedAt
	pet.UpdatedAt = projection.Metadata.UpdatedAt
	return pet
}

// FromProjectionList maps a slice of projections into transport pets with metadata.
func FromProjectionList(list []*petstypes.PetProjection) []Pet {
	result := make([]Pet, 0, len(list))
	for _, projection := range list {
		result = append(result, FromProjection(projection))
	}
	return result
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copy := *value
	return &copy
}
