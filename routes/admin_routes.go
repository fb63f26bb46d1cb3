package routes

import (
	"cityride/internal/handlers"
	"cityride/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up the back-office routes
func SetupAdminRoutes(r *gin.RouterGroup, adminHandler *handlers.AdminHandler, chatHandler *handlers.ChatHandler, jwtSecret string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/stats", adminHandler.Stats)

		// User management
		admin.GET("/users", adminHandler.ListUsers)
		admin.PUT("/users/:id/active", adminHandler.SetUserActive)

		// Low-rating review
		admin.GET("/ratings/low", adminHandler.LowRatings)
		admin.POST("/ratings/:id/alert", adminHandler.SendAlert)

		// Report moderation
		admin.GET("/reports", adminHandler.ListReports)
		admin.PUT("/reports/:id/message", adminHandler.SendMessage)
		admin.PUT("/reports/:id/resolve", adminHandler.Resolve)
		admin.PUT("/reports/:id/dismiss", adminHandler.Dismiss)
		admin.POST("/notices", adminHandler.SendNotice)

		// Chat oversight on any trip
		admin.GET("/trips/:id/chat", chatHandler.List)

		// Bulk cleanup for test environments
		admin.DELETE("/:entity", adminHandler.BulkDelete)
	}
}
