package services

import (
	"context"
	"strings"

	"cityride/internal/apperrors"
	"cityride/internal/models"
	"cityride/internal/repositories/interfaces"
	"cityride/internal/utils"
	"cityride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportService interface {
	Create(ctx context.Context, reporterID primitive.ObjectID, request *ReportRequest) (*models.Report, error)
	ListMine(ctx context.Context, userID primitive.ObjectID) ([]*models.Report, error)
	ListAgainstMe(ctx context.Context, userID primitive.ObjectID) ([]*models.Report, error)
	ListAll(ctx context.Context, status models.ReportStatus, params *utils.PaginationParams) ([]*models.Report, int64, error)

	// Admin triage: messaging the reported user opens their response window.
	SendAdminMessage(ctx context.Context, reportID, adminID primitive.ObjectID, message string) (*models.Report, error)
	Respond(ctx context.Context, reportID, userID primitive.ObjectID, response string) (*models.Report, error)
	Resolve(ctx context.Context, reportID primitive.ObjectID) (*models.Report, error)
	Dismiss(ctx context.Context, reportID primitive.ObjectID) (*models.Report, error)

	// One-way admin notices
	SendNotice(ctx context.Context, adminID, recipientID primitive.ObjectID, message string) (*models.AdminNotice, error)
	ListNotices(ctx context.Context, recipientID primitive.ObjectID) ([]*models.AdminNotice, error)
	MarkNoticeRead(ctx context.Context, noticeID, recipientID primitive.ObjectID) error
}

type reportService struct {
	reportRepo interfaces.ReportRepository
	noticeRepo interfaces.NoticeRepository
	userRepo   interfaces.UserRepository
	tripRepo   interfaces.TripRepository
	logger     *logger.Logger
}

func NewReportService(
	reportRepo interfaces.ReportRepository,
	noticeRepo interfaces.NoticeRepository,
	userRepo interfaces.UserRepository,
	tripRepo interfaces.TripRepository,
	log *logger.Logger,
) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		noticeRepo: noticeRepo,
		userRepo:   userRepo,
		tripRepo:   tripRepo,
		logger:     log.WithField("service", "report"),
	}
}

type ReportRequest struct {
	ReportedUserID primitive.ObjectID  `json:"reported_user_id" validate:"required"`
	TripID         *primitive.ObjectID `json:"trip_id,omitempty"`
	Title          string              `json:"title" validate:"required,max=120"`
	Description    string              `json:"description" validate:"required,max=2000"`
}

func (s *reportService) Create(ctx context.Context, reporterID primitive.ObjectID, request *ReportRequest) (*models.Report, error) {
	title := strings.TrimSpace(request.Title)
	description := strings.TrimSpace(request.Description)
	if title == "" || description == "" {
		return nil, apperrors.Validation("title and description are required")
	}
	if request.ReportedUserID == reporterID {
		return nil, apperrors.Validation("cannot report yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, request.ReportedUserID); err != nil {
		return nil, err
	}
	if request.TripID != nil {
		trip, err := s.tripRepo.GetByID(ctx, *request.TripID)
		if err != nil {
			return nil, err
		}
		if !trip.IsParticipant(reporterID) || !trip.IsParticipant(request.ReportedUserID) {
			return nil, apperrors.Validation("report trip must involve both users")
		}
	}

	report := &models.Report{
		ReporterID:     reporterID,
		ReportedUserID: request.ReportedUserID,
		TripID:         request.TripID,
		Title:          title,
		Description:    description,
		Status:         models.ReportStatusPending,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.WithField("report_id", report.ID.Hex()).Info("report filed")
	return report, nil
}

func (s *reportService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]*models.Report, error) {
	return s.reportRepo.ListByReporter(ctx, userID)
}

// ListAgainstMe returns reports filed against the caller. This is how the
// reported user discovers an admin message and the open response window.
func (s *reportService) ListAgainstMe(ctx context.Context, userID primitive.ObjectID) ([]*models.Report, error) {
	return s.reportRepo.ListByReported(ctx, userID)
}

func (s *reportService) ListAll(ctx context.Context, status models.ReportStatus, params *utils.PaginationParams) ([]*models.Report, int64, error) {
	return s.reportRepo.ListAll(ctx, status, params)
}

func (s *reportService) SendAdminMessage(ctx context.Context, reportID, adminID primitive.ObjectID, message string) (*models.Report, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.Validation("message is required")
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !report.IsOpen() {
		return nil, apperrors.State("report is already %s", report.Status)
	}

	err = s.reportRepo.Update(ctx, reportID, map[string]interface{}{
		"status":           models.ReportStatusUnderReview,
		"admin_id":         adminID,
		"admin_message":    message,
		"response_allowed": true,
	})
	if err != nil {
		return nil, err
	}

	return s.reportRepo.GetByID(ctx, reportID)
}

// Respond records the reported user's rebuttal. Each admin message opens
// exactly one response window; responding closes it again.
func (s *reportService) Respond(ctx context.Context, reportID, userID primitive.ObjectID, response string) (*models.Report, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, apperrors.Validation("response is required")
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.ReportedUserID != userID {
		return nil, apperrors.Permission("only the reported user can respond")
	}
	if !report.ResponseAllowed {
		return nil, apperrors.State("report is not open for a response")
	}

	err = s.reportRepo.Update(ctx, reportID, map[string]interface{}{
		"user_response":    response,
		"response_allowed": false,
	})
	if err != nil {
		return nil, err
	}

	return s.reportRepo.GetByID(ctx, reportID)
}

func (s *reportService) Resolve(ctx context.Context, reportID primitive.ObjectID) (*models.Report, error) {
	return s.close(ctx, reportID, models.ReportStatusResolved)
}

func (s *reportService) Dismiss(ctx context.Context, reportID primitive.ObjectID) (*models.Report, error) {
	return s.close(ctx, reportID, models.ReportStatusDismissed)
}

func (s *reportService) close(ctx context.Context, reportID primitive.ObjectID, status models.ReportStatus) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !report.IsOpen() {
		return nil, apperrors.State("report is already %s", report.Status)
	}

	err = s.reportRepo.Update(ctx, reportID, map[string]interface{}{
		"status":           status,
		"response_allowed": false,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"report_id": reportID.Hex(),
		"status":    status,
	}).Info("report closed")

	return s.reportRepo.GetByID(ctx, reportID)
}

func (s *reportService) SendNotice(ctx context.Context, adminID, recipientID primitive.ObjectID, message string) (*models.AdminNotice, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.Validation("message is required")
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	notice := &models.AdminNotice{
		RecipientID: recipientID,
		AdminID:     adminID,
		Message:     message,
	}

	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}

	return notice, nil
}

func (s *reportService) ListNotices(ctx context.Context, recipientID primitive.ObjectID) ([]*models.AdminNotice, error) {
	return s.noticeRepo.ListByRecipient(ctx, recipientID)
}

func (s *reportService) MarkNoticeRead(ctx context.Context, noticeID, recipientID primitive.ObjectID) error {
	ok, err := s.noticeRepo.MarkRead(ctx, noticeID, recipientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("notice")
	}
	return nil
}
