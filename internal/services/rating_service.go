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

type RatingService interface {
	Rate(ctx context.Context, raterID primitive.ObjectID, request *RateRequest) (*models.Rating, error)
	ListLowRatings(ctx context.Context) ([]*models.LowRatingView, error)
	SendAlert(ctx context.Context, ratingID, adminID primitive.ObjectID, message string) (*models.AdminAlert, error)
	ListAlerts(ctx context.Context, driverID primitive.ObjectID) ([]*models.AdminAlert, error)
	MarkAlertRead(ctx context.Context, alertID, driverID primitive.ObjectID) error
}

type ratingService struct {
	ratingRepo interfaces.RatingRepository
	alertRepo  interfaces.AlertRepository
	tripRepo   interfaces.TripRepository
	userRepo   interfaces.UserRepository
	logger     *logger.Logger
}

func NewRatingService(
	ratingRepo interfaces.RatingRepository,
	alertRepo interfaces.AlertRepository,
	tripRepo interfaces.TripRepository,
	userRepo interfaces.UserRepository,
	log *logger.Logger,
) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		alertRepo:  alertRepo,
		tripRepo:   tripRepo,
		userRepo:   userRepo,
		logger:     log.WithField("service", "rating"),
	}
}

type RateRequest struct {
	TripID      primitive.ObjectID `json:"trip_id" validate:"required"`
	RatedUserID primitive.ObjectID `json:"rated_user_id" validate:"required"`
	Stars       int                `json:"stars" validate:"required,min=1,max=5"`
	Reason      string             `json:"reason" validate:"omitempty,max=500"`
}

func (s *ratingService) Rate(ctx context.Context, raterID primitive.ObjectID, request *RateRequest) (*models.Rating, error) {
	if request.Stars < utils.MinStars || request.Stars > utils.MaxStars {
		return nil, apperrors.Validation("stars must be between %d and %d", utils.MinStars, utils.MaxStars)
	}
	reason := strings.TrimSpace(request.Reason)
	if request.Stars < utils.MaxStars && reason == "" {
		return nil, apperrors.Validation("a reason is required for ratings below %d stars", utils.MaxStars)
	}

	trip, err := s.tripRepo.GetByID(ctx, request.TripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != models.TripStatusCompleted {
		return nil, apperrors.State("only completed trips can be rated")
	}
	if !trip.IsParticipant(raterID) {
		return nil, apperrors.Permission("only trip participants can rate")
	}
	counterpart := trip.CounterpartID(raterID)
	if counterpart == nil || *counterpart != request.RatedUserID {
		return nil, apperrors.Validation("rated user is not the trip counterpart")
	}

	exists, err := s.ratingRepo.ExistsByTrip(ctx, request.TripID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("trip has already been rated")
	}

	rating := &models.Rating{
		TripID:      request.TripID,
		RaterID:     raterID,
		RatedUserID: request.RatedUserID,
		Stars:       request.Stars,
		Reason:      reason,
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}

	rated, err := s.userRepo.ApplyRating(ctx, request.RatedUserID, request.Stars)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"trip_id":    request.TripID.Hex(),
		"stars":      request.Stars,
		"new_rating": rated.Rating,
	}).Info("rating recorded")

	return rating, nil
}

func (s *ratingService) ListLowRatings(ctx context.Context) ([]*models.LowRatingView, error) {
	ratings, err := s.ratingRepo.ListLow(ctx, utils.LowRatingBelow)
	if err != nil {
		return nil, err
	}

	userIDs := make([]primitive.ObjectID, 0, len(ratings)*2)
	ratingIDs := make([]primitive.ObjectID, 0, len(ratings))
	for _, rating := range ratings {
		userIDs = append(userIDs, rating.RaterID, rating.RatedUserID)
		ratingIDs = append(ratingIDs, rating.ID)
	}

	summaries, err := s.userRepo.GetSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	alerted, err := s.alertRepo.ExistingRatingIDs(ctx, ratingIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*models.LowRatingView, 0, len(ratings))
	for _, rating := range ratings {
		view := &models.LowRatingView{
			Rating:  rating,
			Alerted: alerted[rating.ID],
		}
		if summary := summaries[rating.RaterID]; summary != nil {
			view.RaterName = summary.Name
		}
		if summary := summaries[rating.RatedUserID]; summary != nil {
			view.RatedName = summary.Name
		}
		if trip, err := s.tripRepo.GetByID(ctx, rating.TripID); err == nil {
			view.Pickup = trip.Pickup.Address
			view.Destination = trip.Destination.Address
		}
		views = append(views, view)
	}

	return views, nil
}

// SendAlert enforces one alert per rating as a hard invariant: the existence
// check covers the common path and the unique index settles any race.
func (s *ratingService) SendAlert(ctx context.Context, ratingID, adminID primitive.ObjectID, message string) (*models.AdminAlert, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.Validation("alert message is required")
	}

	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return nil, err
	}

	exists, err := s.alertRepo.ExistsByRating(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("rating already has an alert")
	}

	alert := &models.AdminAlert{
		TargetUserID: rating.RatedUserID,
		RatingID:     ratingID,
		AdminID:      adminID,
		Message:      message,
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"rating_id": ratingID.Hex(),
		"target_id": rating.RatedUserID.Hex(),
	}).Info("alert sent")

	return alert, nil
}

func (s *ratingService) ListAlerts(ctx context.Context, driverID primitive.ObjectID) ([]*models.AdminAlert, error) {
	return s.alertRepo.ListByTarget(ctx, driverID)
}

func (s *ratingService) MarkAlertRead(ctx context.Context, alertID, driverID primitive.ObjectID) error {
	ok, err := s.alertRepo.MarkRead(ctx, alertID, driverID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound("alert")
	}
	return nil
}
