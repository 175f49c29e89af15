package controllers

import (
	"net/http"

	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/dtos"
	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/services"
)

// HealthController checks store connectivity.
type HealthController struct {
	resources services.ResourceService
}

func NewHealthController(s services.ResourceService) *HealthController {
	return &HealthController{resources: s}
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.resources.Ping(r.Context()); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusServiceUnavailable, utils.ErrCodeUpstreamUnavailable, "Store unreachable", nil, err,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
