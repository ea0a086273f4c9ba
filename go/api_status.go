package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adoptionhttpmapper "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/http/mapper"
	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	adoptiondomain "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
)

// StatusAPI serves the adoption flow model.
type StatusAPI struct{}

// NewStatusAPI creates a StatusAPI.
func NewStatusAPI() StatusAPI {
	return StatusAPI{}
}

// Get /v1/adoption-statuses
// Lists every adoption status with its derived properties
func (api *StatusAPI) ListAdoptionStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, adoptionhttpmapper.FromDescriptorList(adoptiontypes.DescribeAllStatuses()))
}

// Get /v1/adoption-statuses/:status
// Describes one status; unknown values get the default descriptor
func (api *StatusAPI) GetAdoptionStatus(c *gin.Context) {
	status, _ := adoptiondomain.ParseStatus(c.Param("status"))
	c.JSON(http.StatusOK, adoptionhttpmapper.FromDescriptor(adoptiontypes.DescribeStatus(status)))
}
