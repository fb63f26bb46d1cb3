package services

import (
	"context"
	"testing"

	"cityride/internal/apperrors"
	"cityride/internal/models"
	"cityride/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type tripFixture struct {
	userRepo  *fakeUserRepo
	tripRepo  *fakeTripRepo
	service   TripService
	passenger *models.User
	driver    *models.User
}

func newTripFixture(t *testing.T) *tripFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	tripRepo := newFakeTripRepo()

	passenger := &models.User{
		FirstName: "Paula",
		LastName:  "Ng",
		Email:     "paula@example.com",
		Role:      models.RolePassenger,
		IsActive:  true,
		Rating:    5.0,
	}
	driver := &models.User{
		FirstName:    "Dave",
		LastName:     "Osei",
		Email:        "dave@example.com",
		Role:         models.RoleDriver,
		IsActive:     true,
		Rating:       5.0,
		DriverStatus: models.DriverStatusOnline,
	}
	require.NoError(t, userRepo.Create(context.Background(), passenger))
	require.NoError(t, userRepo.Create(context.Background(), driver))

	return &tripFixture{
		userRepo:  userRepo,
		tripRepo:  tripRepo,
		service:   NewTripService(tripRepo, userRepo, logger.NewNop()),
		passenger: passenger,
		driver:    driver,
	}
}

func (f *tripFixture) requestTrip(t *testing.T) *models.Trip {
	t.Helper()

	trip, err := f.service.Request(context.Background(), f.passenger.ID, &TripRequest{
		Pickup:         models.GeoPoint{Address: "1 Main St"},
		Destination:    models.GeoPoint{Address: "99 Elm Ave"},
		EstimatedPrice: 12.50,
	})
	require.NoError(t, err)
	return trip
}

func TestTripRequest(t *testing.T) {
	f := newTripFixture(t)

	trip := f.requestTrip(t)
	assert.Equal(t, models.TripStatusRequested, trip.Status)
	assert.Equal(t, f.passenger.ID, trip.PassengerID)
	assert.Nil(t, trip.DriverID)
	assert.False(t, trip.RequestedAt.IsZero())
}

func TestTripRequestMissingAddress(t *testing.T) {
	f := newTripFixture(t)

	_, err := f.service.Request(context.Background(), f.passenger.ID, &TripRequest{
		Pickup:      models.GeoPoint{Address: ""},
		Destination: models.GeoPoint{Address: "99 Elm Ave"},
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestTripAccept(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	accepted, err := f.service.Accept(context.Background(), trip.ID, f.driver.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.DriverID)
	assert.Equal(t, f.driver.ID, *accepted.DriverID)
	assert.NotNil(t, accepted.AcceptedAt)

	driver, err := f.userRepo.GetByID(context.Background(), f.driver.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DriverStatusBusy, driver.DriverStatus)
}

func TestTripAcceptRequiresOnlineDriver(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	require.NoError(t, f.userRepo.SetDriverStatus(context.Background(), f.driver.ID, models.DriverStatusOffline))

	_, err := f.service.Accept(context.Background(), trip.ID, f.driver.ID)
	assert.Equal(t, apperrors.KindState, apperrors.KindOf(err))
}

// Two drivers race for the same trip: exactly one claim succeeds and the
// loser sees a conflict, never a silent reassignment.
func TestTripAcceptSecondDriverConflicts(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	second := &models.User{
		FirstName:    "Sara",
		LastName:     "Lim",
		Email:        "sara@example.com",
		Role:         models.RoleDriver,
		IsActive:     true,
		DriverStatus: models.DriverStatusOnline,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), second))

	_, err := f.service.Accept(context.Background(), trip.ID, f.driver.ID)
	require.NoError(t, err)

	_, err = f.service.Accept(context.Background(), trip.ID, second.ID)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// The trip still belongs to the first driver.
	got, err := f.tripRepo.GetByID(context.Background(), trip.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DriverID)
	assert.Equal(t, f.driver.ID, *got.DriverID)
}

func TestTripAcceptMissingTrip(t *testing.T) {
	f := newTripFixture(t)

	_, err := f.service.Accept(context.Background(), primitive.NewObjectID(), f.driver.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestTripStartAndComplete(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	_, err := f.service.Accept(context.Background(), trip.ID, f.driver.ID)
	require.NoError(t, err)

	started, err := f.service.Start(context.Background(), trip.ID, f.driver.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusInProgress, started.Status)
	assert.NotNil(t, started.StartedAt)

	completed, err := f.service.Complete(context.Background(), trip.ID, f.driver.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	// Completing the trip frees the driver and bumps both trip counters.
	driver, err := f.userRepo.GetByID(context.Background(), f.driver.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DriverStatusOnline, driver.DriverStatus)
	assert.Equal(t, int64(1), driver.CompletedTrips)

	passenger, err := f.userRepo.GetByID(context.Background(), f.passenger.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), passenger.CompletedTrips)
}

func TestTripStartRequiresAssignedDriver(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	_, err := f.service.Accept(context.Background(), trip.ID, f.driver.ID)
	require.NoError(t, err)

	other := primitive.NewObjectID()
	_, err = f.service.Start(context.Background(), trip.ID, other)
	assert.Equal(t, apperrors.KindPermission, apperrors.KindOf(err))
}

func TestTripStartWrongStatus(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	_, err := f.service.Accept(context.Background(), trip.ID, f.driver.ID)
	require.NoError(t, err)
	_, err = f.service.Start(context.Background(), trip.ID, f.driver.ID)
	require.NoError(t, err)

	// Starting twice fails: the trip is already in progress.
	_, err = f.service.Start(context.Background(), trip.ID, f.driver.ID)
	assert.Equal(t, apperrors.KindState, apperrors.KindOf(err))
}

func TestTripCompleteWrongStatus(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	_, err := f.service.Accept(context.Background(), trip.ID, f.driver.ID)
	require.NoError(t, err)

	// Completing before starting is rejected.
	_, err = f.service.Complete(context.Background(), trip.ID, f.driver.ID)
	assert.Equal(t, apperrors.KindState, apperrors.KindOf(err))
}

func TestTripCancel(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	cancelled, err := f.service.Cancel(context.Background(), trip.ID, f.passenger.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
}

func TestTripCancelOnlyPassenger(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	_, err := f.service.Cancel(context.Background(), trip.ID, f.driver.ID)
	assert.Equal(t, apperrors.KindPermission, apperrors.KindOf(err))
}

func TestTripCancelOnlyWhileRequested(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	_, err := f.service.Accept(context.Background(), trip.ID, f.driver.ID)
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), trip.ID, f.passenger.ID)
	assert.Equal(t, apperrors.KindState, apperrors.KindOf(err))
}

func TestTripListAvailableShowsPassenger(t *testing.T) {
	f := newTripFixture(t)
	f.requestTrip(t)

	views, err := f.service.ListAvailable(context.Background(), f.driver.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Counterpart)
	assert.Equal(t, "Paula Ng", views[0].Counterpart.Name)
}

func TestTripListMine(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	_, err := f.service.Accept(context.Background(), trip.ID, f.driver.ID)
	require.NoError(t, err)

	passengerViews, err := f.service.ListMine(context.Background(), f.passenger.ID, models.RolePassenger)
	require.NoError(t, err)
	require.Len(t, passengerViews, 1)
	require.NotNil(t, passengerViews[0].Counterpart)
	assert.Equal(t, "Dave Osei", passengerViews[0].Counterpart.Name)

	driverViews, err := f.service.ListMine(context.Background(), f.driver.ID, models.RoleDriver)
	require.NoError(t, err)
	require.Len(t, driverViews, 1)
	require.NotNil(t, driverViews[0].Counterpart)
	assert.Equal(t, "Paula Ng", driverViews[0].Counterpart.Name)
}

func TestTripGetParticipantOnly(t *testing.T) {
	f := newTripFixture(t)
	trip := f.requestTrip(t)

	_, err := f.service.Get(context.Background(), trip.ID, primitive.NewObjectID(), models.RolePassenger)
	assert.Equal(t, apperrors.KindPermission, apperrors.KindOf(err))

	// Admins read any trip.
	got, err := f.service.Get(context.Background(), trip.ID, primitive.NewObjectID(), models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, trip.ID, got.ID)
}
