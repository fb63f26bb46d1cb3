package routes

import (
	"cityride/internal/handlers"
	"cityride/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up routes for registration, login, and profiles
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	me := r.Group("/auth")
	me.Use(middleware.AuthRequired(jwtSecret))
	{
		me.GET("/me", authHandler.Me)
		me.PUT("/me", authHandler.UpdateMe)
		me.POST("/me/photo", authHandler.UploadPhoto)
	}
}
