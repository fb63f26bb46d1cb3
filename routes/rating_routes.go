package routes

import (
	"cityride/internal/handlers"
	"cityride/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRatingRoutes sets up the post-trip rating route
func SetupRatingRoutes(r *gin.RouterGroup, ratingHandler *handlers.RatingHandler, jwtSecret string) {
	ratings := r.Group("/ratings")
	ratings.Use(middleware.AuthRequired(jwtSecret))
	{
		ratings.POST("/create", ratingHandler.Create)
	}
}
