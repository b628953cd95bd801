package staff

import (
	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
}

// NewRouter creates a new staff auth router
func NewRouter(controller *Controller) *Router {
	return &Router{
		controller: controller,
	}
}

// SetupRoutes registers all auth routes. authRequired is the JWT middleware
// supplied by the route composer; it guards the routes below that need a
// valid access token.
func (r *Router) SetupRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", r.controller.Register)
		auth.POST("/login", r.controller.Login)
		auth.POST("/refresh", r.controller.RefreshToken)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(authRequired)
		{
			protected.PUT("/change-password", r.controller.ChangePassword)
			protected.GET("/me", r.controller.GetMe)
		}
	}
}
