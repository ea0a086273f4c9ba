package adoptionserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	pethttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/http/mapper"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

// PetAPI wires HTTP transport with the pets bounded context service.
type PetAPI struct {
	service petsports.Service
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petsports.Service) PetAPI {
	return PetAPI{service: service}
}

// Get /v1/pets
// Lists every pet in the catalog
func (api *PetAPI) ListPets(c *gin.Context) {
	result, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(result))
}

// Post /v1/pets
// Add a new pet to the catalog
func (api *PetAPI) AddPet(c *gin.Context) {
	var payload pethttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := petstypes.AddPetInput{PetMutationInput: pethttpmapper.ToMutationInput(payload)}
	saved, err := api.service.AddPet(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pethttpmapper.FromProjection(saved))
}

// Delete /v1/pets/:petId
// Deletes a pet
func (api *PetAPI) DeletePet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), petstypes.PetIdentifier{ID: id}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/pets/findByStatus
// Finds Pets by status
func (api *PetAPI) FindPetsByStatus(c *gin.Context) {
	statuses := c.QueryArray("status")
	result, err := api.service.FindByStatus(c.Request.Context(), petstypes.FindPetsByStatusInput{Statuses: statuses})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(result))
}

// Get /v1/pets/findByTags
// Finds Pets by tags
func (api *PetAPI) FindPetsByTags(c *gin.Context) {
	tags := c.QueryArray("tags")
	result, err := api.service.FindByTags(c.Request.Context(), petstypes.FindPetsByTagsInput{Tags: tags})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(result))
}

// Get /v1/pets/:petId
// Find pet by ID
func (api *PetAPI) GetPetById(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	pet, err := api.service.GetByID(c.Request.Context(), petstypes.PetIdentifier{ID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(pet))
}

// Put /v1/pets/:petId
// Update an existing pet
func (api *PetAPI) UpdatePet(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	var payload pethttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	payload.ID = id
	input := petstypes.UpdatePetInput{PetMutationInput: pethttpmapper.ToMutationInput(payload)}
	updated, err := api.service.UpdatePet(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(updated))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondBadRequest(c, err)
		return 0, false
	}
	return id, true
}
