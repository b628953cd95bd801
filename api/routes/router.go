// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"eventcraft/internal/bookings"
	"eventcraft/internal/catalog"
	"eventcraft/internal/events"
	"eventcraft/internal/notifications"
	"eventcraft/internal/shared/config"
	"eventcraft/internal/shared/database"
	"eventcraft/internal/shared/middleware"
	"eventcraft/internal/staff"
	"eventcraft/internal/wizard"
	"eventcraft/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	cache    cache.Service
	producer notifications.Producer

	// services shared across modules
	catalogService catalog.Service
	bookingService bookings.Service
	eventService   events.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		cache:    cache.NewService(db.GetRedis()),
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupStaffRoutes(api)
		r.setupCatalogRoutes(api)
		r.setupBookingRoutes(api)
		r.setupEventRoutes(api)
		r.setupWizardRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "eventcraft-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "eventcraft-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupStaffRoutes configures authentication and account routes
func (r *Router) setupStaffRoutes(rg *gin.RouterGroup) {
	staffRepo := staff.NewRepository(r.db.GetPostgreSQL())
	staffService := staff.NewService(staffRepo, r.config)
	staffController := staff.NewController(staffService)
	staffRouter := staff.NewRouter(staffController)

	staffRouter.SetupRoutes(rg, middleware.JWTAuthWithConfig(r.config))
}

// setupCatalogRoutes configures package and venue catalog routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	r.catalogService = catalog.NewService(catalogRepo, r.cache)
	catalogController := catalog.NewController(r.catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController)
}

// setupBookingRoutes configures booking lookup routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	r.bookingService = bookings.NewService(bookingRepo, r.cache)
	bookingController := bookings.NewController(r.bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupEventRoutes configures finalized event routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	r.eventService = events.NewService(eventRepo)
	eventController := events.NewController(r.eventService)

	events.SetupEventRoutes(rg, eventController)
}

// setupWizardRoutes wires the event builder. Must run after the catalog,
// booking and event modules: the wizard consumes their services.
func (r *Router) setupWizardRoutes(rg *gin.RouterGroup) {
	drafts := wizard.NewDraftStore(r.cache, r.config.Wizard.DraftTTL)
	creator := wizard.NewEventCreator(r.eventService)
	registry := wizard.NewDefaultRegistry(creator, r.bookingService, drafts, r.producer)
	converter := wizard.NewConverter(r.bookingService, r.catalogService)

	wizardService := wizard.NewService(registry, drafts, converter, r.catalogService, r.config.Wizard.RecoveryWindow)
	wizardController := wizard.NewController(wizardService)

	wizard.SetupWizardRoutes(rg, wizardController)
}
