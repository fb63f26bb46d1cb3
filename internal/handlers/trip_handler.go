package handlers

import (
	"context"

	"cityride/internal/middleware"
	"cityride/internal/models"
	"cityride/internal/services"
	"cityride/internal/utils"
	"cityride/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripHandler struct {
	tripService services.TripService
}

func NewTripHandler(tripService services.TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
	}
}

// Request creates a new trip request for the passenger.
func (h *TripHandler) Request(c *gin.Context) {
	passengerID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.TripRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); errs != nil {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	trip, err := h.tripService.Request(c.Request.Context(), passengerID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Trip requested successfully", trip)
}

// ListAvailable returns unclaimed trip requests for drivers.
func (h *TripHandler) ListAvailable(c *gin.Context) {
	driverID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	trips, err := h.tripService.ListAvailable(c.Request.Context(), driverID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Available trips retrieved successfully", gin.H{"trips": trips})
}

// Accept claims a requested trip for the driver.
func (h *TripHandler) Accept(c *gin.Context) {
	h.transition(c, h.tripService.Accept, "Trip accepted successfully")
}

// Start moves an accepted trip to in progress.
func (h *TripHandler) Start(c *gin.Context) {
	h.transition(c, h.tripService.Start, "Trip started successfully")
}

// Complete finishes an in-progress trip.
func (h *TripHandler) Complete(c *gin.Context) {
	h.transition(c, h.tripService.Complete, "Trip completed successfully")
}

// Cancel cancels a requested trip for the passenger.
func (h *TripHandler) Cancel(c *gin.Context) {
	h.transition(c, h.tripService.Cancel, "Trip cancelled successfully")
}

// ListMine returns the caller's trip history with counterpart info.
func (h *TripHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	trips, err := h.tripService.ListMine(c.Request.Context(), userID, middleware.UserRole(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Trips retrieved successfully", gin.H{"trips": trips})
}

// Get returns a single trip; this is the status endpoint clients poll.
func (h *TripHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	tripID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip ID")
		return
	}

	trip, err := h.tripService.Get(c.Request.Context(), tripID, userID, middleware.UserRole(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Trip retrieved successfully", trip)
}

func (h *TripHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, tripID, userID primitive.ObjectID) (*models.Trip, error),
	message string,
) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	tripID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid trip ID")
		return
	}

	trip, err := fn(c.Request.Context(), tripID, userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, message, trip)
}
