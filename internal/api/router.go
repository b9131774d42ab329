package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/api/handlers"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/api/middleware"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/config"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/services"
)

// SetupRouter configures and returns the main Gin engine.
// rateLimiter guards reservation requests; the caller owns its cleanup loop.
func SetupRouter(cfg *config.Config, listingService services.IListingService, reservationService services.IReservationService, rateLimiter *middleware.RateLimiterMiddleware) *gin.Engine {
	r := gin.New()

	// Apply global middleware first (order matters)
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(slog.Default()))
	r.Use(middleware.CORSMiddleware(cfg.CorsAllowedOrigin))

	// Initialize handlers
	restListingHandler := handlers.NewRestListingHandler(listingService)
	restReservationHandler := handlers.NewRestReservationHandler(reservationService)
	restAdminHandler := handlers.NewRestAdminHandler(listingService)

	v1 := r.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Public catalogue
		v1.GET("/listings", restListingHandler.ListListings)
		v1.GET("/listings/:id", restListingHandler.GetListingByID)
		v1.GET("/listings/:id/metrics", restListingHandler.GetListingMetrics)
		v1.GET("/listings/:id/gallery", restListingHandler.GetGalleryFrame)

		// Reservations
		v1.POST("/listings/:id/reservations", rateLimiter.Limit(), restReservationHandler.Reserve)

		// Admin Routes
		adminRequired := v1.Group("/admin")
		adminRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret), middleware.AdminMiddleware())
		{
			adminRequired.POST("/listings", restAdminHandler.CreateListing)
			adminRequired.PATCH("/listings/:id", restAdminHandler.UpdateListing)
			adminRequired.DELETE("/listings/:id", restAdminHandler.DeleteListing)
		}
	}

	return r
}

// SetupServiceRouter configures and returns the service Gin engine.
// rdb may be nil, in which case getTestEmail reports that Redis is not configured.
func SetupServiceRouter(cfg *config.Config, rdb *redis.Client, listingService services.IListingService, shutdownChan chan<- struct{}) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.LoggerMiddleware(slog.Default()))

	jsonApiHandler := handlers.NewJsonApiHandler(cfg, rdb, listingService, shutdownChan)
	r.POST("/api", jsonApiHandler.HandleRequest)
	return r
}
