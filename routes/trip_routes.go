package routes

import (
	"cityride/internal/handlers"
	"cityride/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupTripRoutes sets up routes for the trip lifecycle and trip chat
func SetupTripRoutes(r *gin.RouterGroup, tripHandler *handlers.TripHandler, chatHandler *handlers.ChatHandler, jwtSecret string) {
	trips := r.Group("/trips")
	trips.Use(middleware.AuthRequired(jwtSecret))
	{
		trips.GET("/mine", tripHandler.ListMine)
		trips.GET("/:id", tripHandler.Get)

		// Trip chat (both participants; admins may read)
		trips.POST("/:id/chat/send", chatHandler.Send)
		trips.GET("/:id/chat", chatHandler.List)
	}

	passenger := r.Group("/trips")
	passenger.Use(middleware.AuthRequired(jwtSecret), middleware.PassengerRequired())
	{
		passenger.POST("/request", tripHandler.Request)
		passenger.PUT("/:id/cancel", tripHandler.Cancel)
	}

	driver := r.Group("/trips")
	driver.Use(middleware.AuthRequired(jwtSecret), middleware.DriverRequired())
	{
		driver.GET("/available", tripHandler.ListAvailable)
		driver.PUT("/:id/accept", tripHandler.Accept)
		driver.PUT("/:id/start", tripHandler.Start)
		driver.PUT("/:id/complete", tripHandler.Complete)
	}
}
