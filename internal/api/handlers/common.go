package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/okvist/crewdesk/internal/utils"
)

// APIError is the failure half of every endpoint's response contract:
// success is always false and error carries a human-readable message.
type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(c *gin.Context, err error) {
	c.JSON(utils.HTTPStatus(err), APIError{Success: false, Error: utils.Message(err)})
}
