package handlers

import (
	"cityride/internal/middleware"
	"cityride/internal/services"
	"cityride/internal/utils"
	"cityride/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportHandler exposes the user side of the moderation workflow:
// filing reports, responding to admin messages, and the notice inbox.
type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create files a report against another user.
func (h *ReportHandler) Create(c *gin.Context) {
	reporterID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.ReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&request); errs != nil {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), reporterID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Report submitted successfully", gin.H{"report": report})
}

// ListMine returns the reports the caller has filed.
func (h *ReportHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	reports, err := h.reportService.ListMine(c.Request.Context(), userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Reports retrieved successfully", gin.H{"reports": reports})
}

// ListAgainstMe returns the reports filed against the caller, where any
// admin message and open response window show up.
func (h *ReportHandler) ListAgainstMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	reports, err := h.reportService.ListAgainstMe(c.Request.Context(), userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Reports retrieved successfully", gin.H{"reports": reports})
}

// Respond submits the reported user's rebuttal to an admin message.
func (h *ReportHandler) Respond(c *gin.Context) {
	userID, ok := middleware.UserID(c)
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
		Response string `json:"response"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	report, err := h.reportService.Respond(c.Request.Context(), reportID, userID, request.Response)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Response submitted successfully", gin.H{"report": report})
}

// ListNotices returns admin notices addressed to the caller.
func (h *ReportHandler) ListNotices(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	notices, err := h.reportService.ListNotices(c.Request.Context(), userID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notices retrieved successfully", gin.H{"notices": notices})
}

// MarkNoticeRead flips a notice's read flag.
func (h *ReportHandler) MarkNoticeRead(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	noticeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid notice ID")
		return
	}

	if err := h.reportService.MarkNoticeRead(c.Request.Context(), noticeID, userID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notice marked as read", nil)
}
