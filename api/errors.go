package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError is the shared error boundary: every handler funnels
// service errors through here so the status mapping is uniform.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrCarNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": domain.ErrCarNotFound.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": domain.ErrNotFound.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}
