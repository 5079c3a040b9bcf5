package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okvist/crewdesk/internal/models"
	"github.com/okvist/crewdesk/internal/services"
)

type EstimatesHandler struct {
	svc services.EstimateService
}

func NewEstimatesHandler(svc services.EstimateService) *EstimatesHandler {
	return &EstimatesHandler{svc: svc}
}

type EstimatesResponse struct {
	Success   bool              `json:"success"`
	Estimates []models.Estimate `json:"estimates"`
	Count     int               `json:"count"`
}

// List handles GET /api/data/estimates.
func (h *EstimatesHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if rows == nil {
		rows = []models.Estimate{}
	}

	c.JSON(http.StatusOK, EstimatesResponse{Success: true, Estimates: rows, Count: len(rows)})
}
