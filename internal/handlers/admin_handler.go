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

// AdminHandler exposes the back-office surface: platform stats, user
// management, low-rating review, report moderation, and bulk cleanup.
type AdminHandler struct {
	adminService  services.AdminService
	ratingService services.RatingService
	reportService services.ReportService
}

func NewAdminHandler(adminService services.AdminService, ratingService services.RatingService, reportService services.ReportService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		ratingService: ratingService,
		reportService: reportService,
	}
}

// Stats returns the platform dashboard counters.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.GetStats(c.Request.Context())
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Stats retrieved successfully", gin.H{"stats": stats})
}

// ListUsers returns a paginated user listing.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.adminService.ListUsers(c.Request.Context(), params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Users retrieved successfully", gin.H{"users": users}, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// SetUserActive blocks or unblocks an account.
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	var request struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.adminService.SetUserActive(c.Request.Context(), userID, *request.Active); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "User updated successfully", gin.H{"active": *request.Active})
}

// LowRatings lists ratings below the review threshold with trip context.
func (h *AdminHandler) LowRatings(c *gin.Context) {
	ratings, err := h.ratingService.ListLowRatings(c.Request.Context())
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Low ratings retrieved successfully", gin.H{"ratings": ratings})
}

// SendAlert creates the single admin alert tied to a low rating.
func (h *AdminHandler) SendAlert(c *gin.Context) {
	adminID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	ratingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid rating ID")
		return
	}

	var request struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	alert, err := h.ratingService.SendAlert(c.Request.Context(), ratingID, adminID, request.Message)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Alert sent successfully", gin.H{"alert": alert})
}

// ListReports returns reports, optionally filtered by status.
func (h *AdminHandler) ListReports(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := models.ReportStatus(c.Query("status"))

	reports, total, err := h.reportService.ListAll(c.Request.Context(), status, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Reports retrieved successfully", gin.H{"reports": reports}, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// SendMessage attaches an admin message to a report and opens the
// response window for the reported user.
func (h *AdminHandler) SendMessage(c *gin.Context) {
	adminID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid report ID")
		return
	}

	var request struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	report, err := h.reportService.SendAdminMessage(c.Request.Context(), reportID, adminID, request.Message)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Message sent successfully", gin.H{"report": report})
}

// Resolve closes a report as resolved.
func (h *AdminHandler) Resolve(c *gin.Context) {
	h.closeReport(c, h.reportService.Resolve, "Report resolved successfully")
}

// Dismiss closes a report as dismissed.
func (h *AdminHandler) Dismiss(c *gin.Context) {
	h.closeReport(c, h.reportService.Dismiss, "Report dismissed successfully")
}

func (h *AdminHandler) closeReport(c *gin.Context, fn func(ctx context.Context, reportID primitive.ObjectID) (*models.Report, error), message string) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid report ID")
		return
	}

	report, err := fn(c.Request.Context(), reportID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, message, gin.H{"report": report})
}

// SendNotice delivers a standalone admin notice to a user.
func (h *AdminHandler) SendNotice(c *gin.Context) {
	adminID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request struct {
		RecipientID string `json:"recipient_id" validate:"required,object_id"`
		Message     string `json:"message" validate:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); errs != nil {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	recipientID, _ := primitive.ObjectIDFromHex(request.RecipientID)
	notice, err := h.reportService.SendNotice(c.Request.Context(), adminID, recipientID, request.Message)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Notice sent successfully", gin.H{"notice": notice})
}

// BulkDelete wipes a collection for test-environment resets.
func (h *AdminHandler) BulkDelete(c *gin.Context) {
	entity := c.Param("entity")

	deleted, err := h.adminService.BulkDelete(c.Request.Context(), entity)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Bulk delete completed successfully", gin.H{
		"entity":  entity,
		"deleted": deleted,
	})
}
