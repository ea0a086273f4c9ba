package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	// Routes for the adoption part of the API
	AdoptionAPI AdoptionAPI
	// Routes for the interest part of the API
	InterestAPI InterestAPI
	// Routes for the pet part of the API
	PetAPI PetAPI
	// Routes for the status part of the API
	StatusAPI StatusAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"ListAdoptionStatuses", http.MethodGet, "/v1/adoption-statuses", handleFunctions.StatusAPI.ListAdoptionStatuses},
		{"GetAdoptionStatus", http.MethodGet, "/v1/adoption-statuses/:status", handleFunctions.StatusAPI.GetAdoptionStatus},
		{"SubmitApplication", http.MethodPost, "/v1/adoptions", handleFunctions.AdoptionAPI.SubmitApplication},
		{"ListApplications", http.MethodGet, "/v1/adoptions", handleFunctions.AdoptionAPI.ListApplications},
		{"GetApplication", http.MethodGet, "/v1/adoptions/:applicationId", handleFunctions.AdoptionAPI.GetApplication},
		{"TransitionApplication", http.MethodPost, "/v1/adoptions/:applicationId/transitions", handleFunctions.AdoptionAPI.TransitionApplication},
		{"WithdrawApplication", http.MethodPost, "/v1/adoptions/:applicationId/withdraw", handleFunctions.AdoptionAPI.WithdrawApplication},
		{"UpdateApplicationNotes", http.MethodPatch, "/v1/adoptions/:applicationId/notes", handleFunctions.AdoptionAPI.UpdateNotes},
		{"RecordInterest", http.MethodPost, "/v1/interests", handleFunctions.InterestAPI.RecordInterest},
		{"ListInterests", http.MethodGet, "/v1/interests", handleFunctions.InterestAPI.ListInterests},
		{"ListPets", http.MethodGet, "/v1/pets", handleFunctions.PetAPI.ListPets},
		{"AddPet", http.MethodPost, "/v1/pets", handleFunctions.PetAPI.AddPet},
		{"FindPetsByStatus", http.MethodGet, "/v1/pets/findByStatus", handleFunctions.PetAPI.FindPetsByStatus},
		{"FindPetsByTags", http.MethodGet, "/v1/pets/findByTags", handleFunctions.PetAPI.FindPetsByTags},
		{"GetPetById", http.MethodGet, "/v1/pets/:petId", handleFunctions.PetAPI.GetPetById},
		{"UpdatePet", http.MethodPut, "/v1/pets/:petId", handleFunctions.PetAPI.UpdatePet},
		{"DeletePet", http.MethodDelete, "/v1/pets/:petId", handleFunctions.PetAPI.DeletePet},
		{"GetPetAvailability", http.MethodGet, "/v1/pets/:petId/availability", handleFunctions.AdoptionAPI.GetPetAvailability},
	}
}
