package wizard

import (
	"eventcraft/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupWizardRoutes(router *gin.RouterGroup, controller Controller) {
	wizard := router.Group("/wizard")
	wizard.Use(middleware.JWTAuth(), middleware.RequireStaff())
	{
		wizard.POST("/open", controller.Open)                  // POST /api/v1/wizard/open
		wizard.POST("/recovery", controller.ResolveRecovery)   // POST /api/v1/wizard/recovery
		wizard.POST("/state", controller.UpdateState)          // POST /api/v1/wizard/state
		wizard.POST("/components", controller.ComponentAction) // POST /api/v1/wizard/components
		wizard.POST("/step", controller.Step)                  // POST /api/v1/wizard/step
		wizard.GET("/summary", controller.Summary)             // GET  /api/v1/wizard/summary
		wizard.POST("/submit", controller.Submit)              // POST /api/v1/wizard/submit
		wizard.POST("/discard", controller.Discard)            // POST /api/v1/wizard/discard
	}
}
