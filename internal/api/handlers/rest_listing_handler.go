package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/services"
)

// RestListingHandler handles REST requests for listings.
type RestListingHandler struct {
	listingService services.IListingService
}

// NewRestListingHandler creates a new RestListingHandler.
func NewRestListingHandler(listingService services.IListingService) *RestListingHandler {
	return &RestListingHandler{listingService: listingService}
}

// ListListings handles GET /v1/listings
func (h *RestListingHandler) ListListings(c *gin.Context) {
	status := models.ParseStatusFilter(c.Query("status"))

	listings, err := h.listingService.ListListings(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": listings, "status": status})
}

// GetListingByID handles GET /v1/listings/:id
func (h *RestListingHandler) GetListingByID(c *gin.Context) {
	listingID, ok := listingIDParam(c)
	if !ok {
		return
	}

	listing, err := h.listingService.FindListingByID(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GetListingMetrics handles GET /v1/listings/:id/metrics
func (h *RestListingHandler) GetListingMetrics(c *gin.Context) {
	listingID, ok := listingIDParam(c)
	if !ok {
		return
	}

	snapshot, err := h.listingService.GetListingMetrics(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// GetGalleryFrame handles GET /v1/listings/:id/gallery
func (h *RestListingHandler) GetGalleryFrame(c *gin.Context) {
	listingID, ok := listingIDParam(c)
	if !ok {
		return
	}
	kind := services.GalleryKind(c.DefaultQuery("kind", string(services.GalleryImages)))
	index, err := strconv.Atoi(c.DefaultQuery("index", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	frame, err := h.listingService.GalleryFrame(c.Request.Context(), listingID, kind, index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, frame)
}
