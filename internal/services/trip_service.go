package services

import (
	"context"

	"cityride/internal/apperrors"
	"cityride/internal/models"
	"cityride/internal/repositories/interfaces"
	"cityride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripService interface {
	Request(ctx context.Context, passengerID primitive.ObjectID, request *TripRequest) (*models.Trip, error)
	ListAvailable(ctx context.Context, driverID primitive.ObjectID) ([]*models.TripView, error)
	Accept(ctx context.Context, tripID, driverID primitive.ObjectID) (*models.Trip, error)
	Start(ctx context.Context, tripID, driverID primitive.ObjectID) (*models.Trip, error)
	Complete(ctx context.Context, tripID, driverID primitive.ObjectID) (*models.Trip, error)
	Cancel(ctx context.Context, tripID, passengerID primitive.ObjectID) (*models.Trip, error)
	ListMine(ctx context.Context, userID primitive.ObjectID, role models.UserRole) ([]*models.TripView, error)
	Get(ctx context.Context, tripID, requesterID primitive.ObjectID, role models.UserRole) (*models.Trip, error)
}

type tripService struct {
	tripRepo interfaces.TripRepository
	userRepo interfaces.UserRepository
	logger   *logger.Logger
}

func NewTripService(tripRepo interfaces.TripRepository, userRepo interfaces.UserRepository, log *logger.Logger) TripService {
	return &tripService{
		tripRepo: tripRepo,
		userRepo: userRepo,
		logger:   log.WithField("service", "trip"),
	}
}

type TripRequest struct {
	Pickup         models.GeoPoint `json:"pickup" validate:"required"`
	Destination    models.GeoPoint `json:"destination" validate:"required"`
	EstimatedPrice float64         `json:"estimated_price" validate:"gte=0"`
}

func (s *tripService) Request(ctx context.Context, passengerID primitive.ObjectID, request *TripRequest) (*models.Trip, error) {
	if request.Pickup.Address == "" || request.Destination.Address == "" {
		return nil, apperrors.Validation("pickup and destination addresses are required")
	}

	trip := &models.Trip{
		PassengerID:    passengerID,
		Pickup:         request.Pickup,
		Destination:    request.Destination,
		EstimatedPrice: request.EstimatedPrice,
		Status:         models.TripStatusRequested,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"trip_id":      trip.ID.Hex(),
		"passenger_id": passengerID.Hex(),
	}).Info("trip requested")

	return trip, nil
}

func (s *tripService) ListAvailable(ctx context.Context, driverID primitive.ObjectID) ([]*models.TripView, error) {
	trips, err := s.tripRepo.ListRequested(ctx)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, trips, func(trip *models.Trip) *primitive.ObjectID {
		return &trip.PassengerID
	})
}

// Accept claims a requested trip for the driver. Losing the conditional
// update while the trip exists means another driver got there first, which
// is the Conflict the second caller must see.
func (s *tripService) Accept(ctx context.Context, tripID, driverID primitive.ObjectID) (*models.Trip, error) {
	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver.DriverStatus != models.DriverStatusOnline {
		return nil, apperrors.State("driver must be online to accept trips")
	}

	trip, claimed, err := s.tripRepo.Accept(ctx, tripID, driverID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		if _, getErr := s.tripRepo.GetByID(ctx, tripID); getErr != nil {
			return nil, getErr
		}
		return nil, apperrors.Conflict("trip has already been claimed")
	}

	if models.CanTransitionDriverStatus(driver.DriverStatus, models.DriverStatusBusy) {
		if err := s.userRepo.SetDriverStatus(ctx, driverID, models.DriverStatusBusy); err != nil {
			s.logger.WithError(err).Error("failed to mark driver busy")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"trip_id":   tripID.Hex(),
		"driver_id": driverID.Hex(),
	}).Info("trip accepted")

	return trip, nil
}

func (s *tripService) Start(ctx context.Context, tripID, driverID primitive.ObjectID) (*models.Trip, error) {
	trip, err := s.assignedTrip(ctx, tripID, driverID)
	if err != nil {
		return nil, err
	}
	if trip.Status != models.TripStatusAccepted {
		return nil, apperrors.State("trip cannot be started while %s", trip.Status)
	}

	ok, err := s.tripRepo.TransitionStatus(ctx, tripID, models.TripStatusAccepted, models.TripStatusInProgress)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.State("trip is no longer in accepted status")
	}

	return s.tripRepo.GetByID(ctx, tripID)
}

func (s *tripService) Complete(ctx context.Context, tripID, driverID primitive.ObjectID) (*models.Trip, error) {
	trip, err := s.assignedTrip(ctx, tripID, driverID)
	if err != nil {
		return nil, err
	}
	if trip.Status != models.TripStatusInProgress {
		return nil, apperrors.State("trip cannot be completed while %s", trip.Status)
	}

	ok, err := s.tripRepo.TransitionStatus(ctx, tripID, models.TripStatusInProgress, models.TripStatusCompleted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.State("trip is no longer in progress")
	}

	if err := s.userRepo.SetDriverStatus(ctx, driverID, models.DriverStatusOnline); err != nil {
		s.logger.WithError(err).Error("failed to put driver back online")
	}

	for _, userID := range []primitive.ObjectID{trip.PassengerID, driverID} {
		if err := s.userRepo.IncrementCompletedTrips(ctx, userID); err != nil {
			s.logger.WithError(err).WithField("user_id", userID.Hex()).Error("failed to bump trip counter")
		}
	}

	s.logger.WithField("trip_id", tripID.Hex()).Info("trip completed")

	return s.tripRepo.GetByID(ctx, tripID)
}

func (s *tripService) Cancel(ctx context.Context, tripID, passengerID primitive.ObjectID) (*models.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.PassengerID != passengerID {
		return nil, apperrors.Permission("only the requesting passenger can cancel")
	}
	if trip.Status != models.TripStatusRequested {
		return nil, apperrors.State("trip cannot be cancelled while %s", trip.Status)
	}

	ok, err := s.tripRepo.TransitionStatus(ctx, tripID, models.TripStatusRequested, models.TripStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.State("trip is no longer in requested status")
	}

	return s.tripRepo.GetByID(ctx, tripID)
}

func (s *tripService) ListMine(ctx context.Context, userID primitive.ObjectID, role models.UserRole) ([]*models.TripView, error) {
	var trips []*models.Trip
	var err error

	switch role {
	case models.RolePassenger:
		trips, err = s.tripRepo.ListByPassenger(ctx, userID)
	case models.RoleDriver:
		trips, err = s.tripRepo.ListByDriver(ctx, userID)
	default:
		return nil, apperrors.Permission("role %s has no trip history", role)
	}
	if err != nil {
		return nil, err
	}

	// Counterpart info is surfaced for every status, not only open trips.
	return s.enrich(ctx, trips, func(trip *models.Trip) *primitive.ObjectID {
		return trip.CounterpartID(userID)
	})
}

func (s *tripService) Get(ctx context.Context, tripID, requesterID primitive.ObjectID, role models.UserRole) (*models.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && !trip.IsParticipant(requesterID) {
		return nil, apperrors.Permission("not a participant of this trip")
	}

	return trip, nil
}

func (s *tripService) assignedTrip(ctx context.Context, tripID, driverID primitive.ObjectID) (*models.Trip, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.DriverID == nil || *trip.DriverID != driverID {
		return nil, apperrors.Permission("trip is not assigned to this driver")
	}

	return trip, nil
}

func (s *tripService) enrich(ctx context.Context, trips []*models.Trip, counterpart func(*models.Trip) *primitive.ObjectID) ([]*models.TripView, error) {
	ids := make([]primitive.ObjectID, 0, len(trips))
	seen := make(map[primitive.ObjectID]bool)
	for _, trip := range trips {
		if id := counterpart(trip); id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}

	summaries, err := s.userRepo.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]*models.TripView, 0, len(trips))
	for _, trip := range trips {
		view := &models.TripView{Trip: trip}
		if id := counterpart(trip); id != nil {
			view.Counterpart = summaries[*id]
		}
		views = append(views, view)
	}

	return views, nil
}
