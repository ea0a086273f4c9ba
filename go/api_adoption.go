package adoptionserver

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	adoptionhttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	adoptiondomain "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	adoptionports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

// IdempotencyKeyHeader lets clients retry a submission safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// AdoptionAPI wires HTTP transport with the adoptions bounded context service and workflows.
type AdoptionAPI struct {
	service   adoptionports.Service
	workflows adoptionports.WorkflowOrchestrator
}

// NewAdoptionAPI creates an AdoptionAPI backed by the provided service.
func NewAdoptionAPI(service adoptionports.Service, workflows adoptionports.WorkflowOrchestrator) AdoptionAPI {
	return AdoptionAPI{service: service, workflows: workflows}
}

// Post /v1/adoptions
// Submits an adoption application
func (api *AdoptionAPI) SubmitApplication(c *gin.Context) {
	var payload adoptionhttpmapper.SubmitApplication
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	saved, err := api.service.SubmitApplication(c.Request.Context(), adoptionhttpmapper.ToSubmitInput(payload, key))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, adoptionhttpmapper.FromProjection(saved))
}

// Get /v1/adoptions
// Lists applications, optionally by userId and petId
func (api *AdoptionAPI) ListApplications(c *gin.Context) {
	input := adoptiontypes.ListApplicationsInput{UserID: c.Query("userId")}
	if raw := strings.TrimSpace(c.Query("petId")); raw != "" {
		petID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondBadRequest(c, err)
			return
		}
		input.PetID = petID
	}
	result, err := api.service.ListApplications(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjectionList(result))
}

// Get /v1/adoptions/:applicationId
// Find application by ID
func (api *AdoptionAPI) GetApplication(c *gin.Context) {
	app, err := api.service.GetApplication(c.Request.Context(), adoptiontypes.ApplicationIdentifier{ID: c.Param("applicationId")})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjection(app))
}

// Post /v1/adoptions/:applicationId/transitions
// Moves an application to the requested status
func (api *AdoptionAPI) TransitionApplication(c *gin.Context) {
	var payload adoptionhttpmapper.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := adoptiontypes.TransitionInput{
		ApplicationID: c.Param("applicationId"),
		Status:        payload.Status,
		Note:          payload.Note,
	}
	updated, err := api.transition(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjection(updated))
}

func (api *AdoptionAPI) transition(ctx context.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, error) {
	if api.workflows != nil {
		return api.workflows.TransitionApplication(ctx, input)
	}
	return api.service.TransitionApplication(ctx, input)
}

// Post /v1/adoptions/:applicationId/withdraw
// Withdraws an active application
func (api *AdoptionAPI) WithdrawApplication(c *gin.Context) {
	updated, err := api.transition(c.Request.Context(), adoptiontypes.TransitionInput{
		ApplicationID: c.Param("applicationId"),
		Status:        string(adoptiondomain.StatusWithdrawn),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjection(updated))
}

// Patch /v1/adoptions/:applicationId/notes
// Replaces shelter and/or user notes
func (api *AdoptionAPI) UpdateNotes(c *gin.Context) {
	var payload adoptionhttpmapper.NotesUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.UpdateNotes(c.Request.Context(), adoptiontypes.UpdateNotesInput{
		ApplicationID: c.Param("applicationId"),
		ShelterNotes:  payload.ShelterNotes,
		UserNotes:     payload.UserNotes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromProjection(updated))
}

// Get /v1/pets/:petId/availability
// Reports whether the pet still accepts applications
func (api *AdoptionAPI) GetPetAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	availability, err := api.service.PetAvailability(c.Request.Context(), adoptiontypes.PetIdentifier{PetID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromAvailability(availability))
}
