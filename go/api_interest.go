package adoptionserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	adoptionhttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	adoptionports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
)

// InterestAPI records swipes on pet cards.
type InterestAPI struct {
	service adoptionports.Service
}

// NewInterestAPI creates an InterestAPI backed by the adoptions service.
func NewInterestAPI(service adoptionports.Service) InterestAPI {
	return InterestAPI{service: service}
}

// Post /v1/interests
// Records a like, super like or pass
func (api *InterestAPI) RecordInterest(c *gin.Context) {
	var payload adoptionhttpmapper.InterestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.RecordInterest(c.Request.Context(), adoptionhttpmapper.ToRecordInterestInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromInterestProjection(saved))
}

// Get /v1/interests
// Lists a user's swipes, newest first
func (api *InterestAPI) ListInterests(c *gin.Context) {
	input := adoptiontypes.ListInterestsInput{UserID: c.Query("userId")}
	if raw := strings.TrimSpace(c.Query("positiveOnly")); raw != "" {
		positive, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(c, err)
			return
		}
		input.PositiveOnly = positive
	}
	result, err := api.service.ListInterests(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionhttpmapper.FromInterestList(result))
}
