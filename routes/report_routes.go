package routes

import (
	"cityride/internal/handlers"
	"cityride/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReportRoutes sets up routes for filing reports and the notice inbox
func SetupReportRoutes(r *gin.RouterGroup, reportHandler *handlers.ReportHandler, jwtSecret string) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthRequired(jwtSecret))
	{
		reports.POST("", reportHandler.Create)
		reports.GET("/mine", reportHandler.ListMine)
		reports.GET("/against-me", reportHandler.ListAgainstMe)
		reports.PUT("/:id/respond", reportHandler.Respond)
	}

	notices := r.Group("/notices")
	notices.Use(middleware.AuthRequired(jwtSecret))
	{
		notices.GET("", reportHandler.ListNotices)
		notices.PUT("/:id/read", reportHandler.MarkNoticeRead)
	}
}
