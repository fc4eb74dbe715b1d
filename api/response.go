package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Envelope wraps every JSON response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func respondFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message, Data: nil})
}

// respondError maps domain errors to 400 and 404. Anything else is logged
// and answered with fallback as a 500.
func respondError(c *gin.Context, log logger.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		respondFail(c, http.StatusBadRequest, messageOf(err))
	case errors.Is(err, domain.ErrNotFound):
		respondFail(c, http.StatusNotFound, messageOf(err))
	default:
		log.Error(fallback, "path", c.FullPath(), "error", err)
		respondFail(c, http.StatusInternalServerError, fallback)
	}
}

func messageOf(err error) string {
	var derr *domain.Error
	if errors.As(err, &derr) {
		return derr.Error()
	}
	return err.Error()
}
