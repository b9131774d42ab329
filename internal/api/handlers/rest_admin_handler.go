package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/api/middleware"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/logging"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/services"
)

// RestAdminHandler handles catalogue administration. Routes must sit behind the admin middleware.
type RestAdminHandler struct {
	listingService services.IListingService
}

// NewRestAdminHandler creates a new RestAdminHandler.
func NewRestAdminHandler(listingService services.IListingService) *RestAdminHandler {
	return &RestAdminHandler{listingService: listingService}
}

// CreateListing handles POST /v1/admin/listings
func (h *RestAdminHandler) CreateListing(c *gin.Context) {
	listing, err := h.listingService.CreateListing(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

// UpdateListing handles PATCH /v1/admin/listings/:id
func (h *RestAdminHandler) UpdateListing(c *gin.Context) {
	listingID, ok := listingIDParam(c)
	if !ok {
		return
	}

	var patch models.ListingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), listingID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// DeleteListing handles DELETE /v1/admin/listings/:id?confirm=true
func (h *RestAdminHandler) DeleteListing(c *gin.Context) {
	listingID, ok := listingIDParam(c)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))

	if err := h.listingService.DeleteListing(c.Request.Context(), listingID, confirmed); err != nil {
		respondError(c, err)
		return
	}
	logging.FromContext(c.Request.Context()).Info("Listing deleted by admin",
		"listing_id", listingID, "subject", c.GetString(middleware.ContextKeySubject))
	c.Status(http.StatusNoContent)
}
