package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okvist/crewdesk/internal/services"
)

type StorageHandler struct {
	svc services.StorageService
}

func NewStorageHandler(svc services.StorageService) *StorageHandler {
	return &StorageHandler{svc: svc}
}

type SignedURLResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// GetSignedURL handles GET /api/storage/getSignedUrl?path=<objectKey>.
func (h *StorageHandler) GetSignedURL(c *gin.Context) {
	url, err := h.svc.SignedURL(c.Request.Context(), c.Query("path"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SignedURLResponse{Success: true, URL: url})
}
