package types

// TagInput carries tag metadata for pet commands.
type TagInput struct {
	ID   int64
	Name string
}

// PetMutationInput represents the fields accepted when creating or replacing a pet aggregate.
// Nil fields are left untouched on update.
type PetMutationInput struct {
	ID          int64
	Name        *string
	Species     *string
	Breed       *string
	AgeMonths   *int
	Description *string
	PhotoURLs   *[]string
	Tags        *[]TagInput
	Status      *string
}

// AddPetInput captures the request to list a new pet.
type AddPetInput struct {
	PetMutationInput
}

// UpdatePetInput replaces an existing pet with new state.
type UpdatePetInput struct {
	PetMutationInput
}

// UpdatePetStatusInput changes only the listing status.
type UpdatePetStatusInput struct {
	ID     int64
	Status string
}
