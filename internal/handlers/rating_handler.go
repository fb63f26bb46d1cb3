package handlers

import (
	"cityride/internal/middleware"
	"cityride/internal/services"
	"cityride/internal/utils"
	"cityride/internal/validators"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// Create records a post-trip rating for the counterpart.
func (h *RatingHandler) Create(c *gin.Context) {
	raterID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.RateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); errs != nil {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	rating, err := h.ratingService.Rate(c.Request.Context(), raterID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Rating submitted successfully", rating)
}
