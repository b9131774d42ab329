package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/logging"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/services"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Message, "fields": vErr.Fields})
	case errors.Is(err, services.ErrListingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
	case errors.Is(err, services.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": "Listing is sold out"})
	case errors.Is(err, services.ErrConfirmationRequired):
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": "Deletion must be confirmed with confirm=true"})
	case errors.Is(err, services.ErrInvalidGalleryKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyGallery):
		c.JSON(http.StatusNotFound, gin.H{"error": "Gallery is empty"})
	default:
		_ = c.Error(err)
		logging.FromContext(c.Request.Context()).Error("Unhandled service error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// listingIDParam parses the :id path parameter, writing a 400 response when it is not a positive integer.
func listingIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID format"})
		return 0, false
	}
	return id, true
}
