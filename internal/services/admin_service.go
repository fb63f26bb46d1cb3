package services

import (
	"context"

	"cityride/internal/apperrors"
	"cityride/internal/models"
	"cityride/internal/repositories/interfaces"
	"cityride/internal/utils"
	"cityride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminService interface {
	GetStats(ctx context.Context) (*PlatformStats, error)

	ListUsers(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
	SetUserActive(ctx context.Context, userID primitive.ObjectID, active bool) error

	// Bulk moderation deletes. Users with the admin role are never deleted.
	BulkDelete(ctx context.Context, entity string) (int64, error)
}

type PlatformStats struct {
	Users          map[models.UserRole]int64   `json:"users"`
	Trips          map[models.TripStatus]int64 `json:"trips"`
	TotalTrips     int64                       `json:"total_trips"`
	CompletionRate float64                     `json:"completion_rate"`
	Revenue        float64                     `json:"revenue"`
	TotalReports   int64                       `json:"total_reports"`
}

type adminService struct {
	userRepo   interfaces.UserRepository
	tripRepo   interfaces.TripRepository
	ratingRepo interfaces.RatingRepository
	reportRepo interfaces.ReportRepository
	chatRepo   interfaces.ChatRepository
	logger     *logger.Logger
}

func NewAdminService(
	userRepo interfaces.UserRepository,
	tripRepo interfaces.TripRepository,
	ratingRepo interfaces.RatingRepository,
	reportRepo interfaces.ReportRepository,
	chatRepo interfaces.ChatRepository,
	log *logger.Logger,
) AdminService {
	return &adminService{
		userRepo:   userRepo,
		tripRepo:   tripRepo,
		ratingRepo: ratingRepo,
		reportRepo: reportRepo,
		chatRepo:   chatRepo,
		logger:     log.WithField("service", "admin"),
	}
}

func (s *adminService) GetStats(ctx context.Context) (*PlatformStats, error) {
	users, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	tripStats, err := s.tripRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	totalReports, err := s.reportRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		Users:          users,
		Trips:          tripStats.ByStatus,
		TotalTrips:     tripStats.Total,
		CompletionRate: tripStats.CompletionRate,
		Revenue:        tripStats.Revenue,
		TotalReports:   totalReports,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, params)
}

func (s *adminService) SetUserActive(ctx context.Context, userID primitive.ObjectID, active bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return apperrors.Permission("admin accounts cannot be moderated")
	}

	return s.userRepo.SetActive(ctx, userID, active)
}

func (s *adminService) BulkDelete(ctx context.Context, entity string) (int64, error) {
	var deleted int64
	var err error

	switch entity {
	case "users":
		deleted, err = s.userRepo.DeleteNonAdmins(ctx)
	case "trips":
		deleted, err = s.tripRepo.DeleteAll(ctx)
	case "ratings":
		deleted, err = s.ratingRepo.DeleteAll(ctx)
	case "reports":
		deleted, err = s.reportRepo.DeleteAll(ctx)
	case "chat":
		deleted, err = s.chatRepo.DeleteAll(ctx)
	default:
		return 0, apperrors.Validation("unknown entity %q", entity)
	}
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"entity":  entity,
		"deleted": deleted,
	}).Warn("bulk delete executed")

	return deleted, nil
}
