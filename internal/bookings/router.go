package bookings

import (
	"eventcraft/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	// Staff routes - booking lookup feeds the event builder's conversion flow
	bookings := router.Group("/bookings")
	bookings.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		bookings.GET("", controller.ListBookings)                    // GET /api/v1/bookings
		bookings.GET("/lookup/:reference", controller.LookupBooking) // GET /api/v1/bookings/lookup/:reference
	}
}
