package events

import (
	"eventcraft/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	events := router.Group("/events")
	events.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		events.GET("", controller.ListEvents)   // GET /api/v1/events
		events.GET("/:id", controller.GetEvent) // GET /api/v1/events/:id
	}
}
