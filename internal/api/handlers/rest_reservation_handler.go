package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/services"
)

// RestReservationHandler handles reservation requests.
type RestReservationHandler struct {
	reservationService services.IReservationService
}

// NewRestReservationHandler creates a new RestReservationHandler.
func NewRestReservationHandler(reservationService services.IReservationService) *RestReservationHandler {
	return &RestReservationHandler{reservationService: reservationService}
}

// Reserve handles POST /v1/listings/:id/reservations
func (h *RestReservationHandler) Reserve(c *gin.Context) {
	listingID, ok := listingIDParam(c)
	if !ok {
		return
	}

	var form models.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	receipt, err := h.reservationService.Reserve(c.Request.Context(), listingID, form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}
