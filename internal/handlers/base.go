package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"burrow/internal/services"
	"burrow/internal/store"
)

// respondErrors renders field-tagged validation errors in the shape the
// services produce them.
func respondErrors(c *gin.Context, code int, errs []services.FieldError) {
	c.JSON(code, gin.H{"errors": errs})
}

// respondServiceError maps core error values onto status codes. Anything
// unrecognized is an infrastructure fault and stays opaque to the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, services.ErrInvalidDirection):
		c.JSON(http.StatusBadRequest, gin.H{"errors": []services.FieldError{
			{Field: "direction", Message: services.ErrInvalidDirection.Error()},
		}})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
