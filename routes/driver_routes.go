package routes

import (
	"cityride/internal/handlers"
	"cityride/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupDriverRoutes sets up driver-only routes: availability, location,
// and the admin alert inbox
func SetupDriverRoutes(r *gin.RouterGroup, driverHandler *handlers.DriverHandler, jwtSecret string) {
	drivers := r.Group("/drivers")
	drivers.Use(middleware.AuthRequired(jwtSecret), middleware.DriverRequired())
	{
		drivers.PUT("/status", driverHandler.SetStatus)
		drivers.PUT("/location", driverHandler.UpdateLocation)
		drivers.GET("/alerts", driverHandler.ListAlerts)
		drivers.PUT("/alerts/:id/read", driverHandler.MarkAlertRead)
	}
}
