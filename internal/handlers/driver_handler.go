package handlers

import (
	"cityride/internal/middleware"
	"cityride/internal/models"
	"cityride/internal/services"
	"cityride/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverHandler covers driver self-service: availability status, location
// reporting, and the alert inbox drivers poll alongside their trip status.
type DriverHandler struct {
	authService   services.AuthService
	ratingService services.RatingService
}

func NewDriverHandler(authService services.AuthService, ratingService services.RatingService) *DriverHandler {
	return &DriverHandler{
		authService:   authService,
		ratingService: ratingService,
	}
}

// SetStatus handles driver online/offline changes.
func (h *DriverHandler) SetStatus(c *gin.Context) {
	driverID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	err := h.authService.SetDriverStatus(c.Request.Context(), driverID, models.DriverStatus(request.Status))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Status updated successfully", gin.H{"status": request.Status})
}

// UpdateLocation stores the driver's current coordinates.
func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	driverID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	err := h.authService.UpdateLocation(c.Request.Context(), driverID, request.Latitude, request.Longitude)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Location updated successfully", nil)
}

// ListAlerts returns the driver's admin alerts, newest first.
func (h *DriverHandler) ListAlerts(c *gin.Context) {
	driverID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	alerts, err := h.ratingService.ListAlerts(c.Request.Context(), driverID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Alerts retrieved successfully", gin.H{"alerts": alerts})
}

// MarkAlertRead flips an alert's read flag.
func (h *DriverHandler) MarkAlertRead(c *gin.Context) {
	driverID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	alertID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid alert ID")
		return
	}

	if err := h.ratingService.MarkAlertRead(c.Request.Context(), alertID, driverID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Alert marked as read", nil)
}
