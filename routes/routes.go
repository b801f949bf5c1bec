package routes

import (
	"github.com/gin-gonic/gin"

	"charting/controllers"
	"charting/middleware"
)

func SetupRoutes(
	router *gin.RouterGroup,
	uc *controllers.UserController,
	tc *controllers.TemplateController,
	ec *controllers.EntryController,
	ac *controllers.AnalyticsController,
) {
	router.POST("/signup", uc.Signup())
	router.POST("/login", uc.Login())

	protected := router.Group("/")
	protected.Use(middleware.Authenticate())
	{
		protected.GET("/me", uc.Me())

		templates := protected.Group("/templates")
		{
			templates.POST("", tc.Create())
			templates.GET("", tc.List())
			templates.GET("/active", tc.GetActive())
			templates.POST("/validate", tc.Validate())
			templates.GET("/stats",
				middleware.Authorize("ADMIN"),
				tc.Stats(),
			)
			templates.GET("/:id", tc.Get())
			templates.PUT("/:id", tc.Update())
			templates.DELETE("/:id",
				middleware.Authorize("ADMIN"),
				tc.Delete(),
			)
			templates.POST("/:id/archive", tc.Archive())
			templates.POST("/:id/restore", tc.Restore())
			templates.POST("/:id/clone", tc.Clone())
			templates.POST("/:id/activate", tc.Activate())
		}

		entries := protected.Group("/entries")
		{
			entries.POST("", ec.Create())
			entries.GET("", ec.GetAll())
			entries.POST("/validate", ec.ValidateResponses())
			entries.GET("/session/:sessionId", ec.BySession())
			entries.GET("/subject/:subjectId", ec.BySubject())
			entries.GET("/:id", ec.Get())
			entries.PUT("/:id", ec.Update())
			entries.DELETE("/:id", ec.Delete())
		}

		analytics := protected.Group("/analytics")
		{
			analytics.GET("/:subjectId/:templateId", ac.GetCached())
			analytics.POST("/:subjectId/:templateId/recalculate", ac.Recalculate())
		}
	}
}
