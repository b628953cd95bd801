package catalog

import (
	"eventcraft/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - the wizard and portals browse the catalog freely
	packages := router.Group("/packages")
	{
		packages.GET("", controller.GetPackages)          // GET /api/v1/packages
		packages.GET("/:id", controller.GetPackageDetail) // GET /api/v1/packages/:id
	}

	venues := router.Group("/venues")
	{
		venues.GET("", controller.GetVenues)    // GET /api/v1/venues
		venues.GET("/:id", controller.GetVenue) // GET /api/v1/venues/:id
	}

	// Admin routes - catalog management
	adminPackages := router.Group("/admin/packages")
	adminPackages.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminPackages.POST("", controller.CreatePackage)
		adminPackages.PUT("/:id", controller.UpdatePackage)
		adminPackages.DELETE("/:id", controller.DeletePackage)
	}

	adminVenues := router.Group("/admin/venues")
	adminVenues.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminVenues.POST("", controller.CreateVenue)
		adminVenues.PUT("/:id", controller.UpdateVenue)
		adminVenues.DELETE("/:id", controller.DeleteVenue)
	}
}
