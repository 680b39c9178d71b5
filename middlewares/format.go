package middlewares

import (
	"AyurClinic/models"
	"errors"
	"log"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

// WriteError maps a service error to its HTTP response. Unrecognized errors
// are logged and returned as an opaque 500.
func WriteError(c *gin.Context, err error) {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": validationErrs})
		return
	}

	var fieldErr *models.ValidationError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErr.Fields})
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	case errors.Is(err, models.ErrDuplicateEntity):
		c.JSON(http.StatusConflict, gin.H{"error": "a record with these details already exists"})
	case errors.Is(err, models.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "the requested time slot is not available"})
	case errors.Is(err, models.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "the appointment cannot move to the requested status"})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, models.ErrAccountLocked):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account temporarily locked after repeated failed logins"})
	case errors.Is(err, models.ErrAccountInactive):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account is not active"})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	default:
		log.Printf("HTTP 500 - unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
