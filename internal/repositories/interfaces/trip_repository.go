package interfaces

import (
	"context"

	"cityride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripStats struct {
	Total          int64                       `json:"total"`
	ByStatus       map[models.TripStatus]int64 `json:"by_status"`
	CompletionRate float64                     `json:"completion_rate"`
	Revenue        float64                     `json:"revenue"`
}

type TripRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, trip *models.Trip) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error)

	// Listings
	ListRequested(ctx context.Context) ([]*models.Trip, error)
	ListByPassenger(ctx context.Context, passengerID primitive.ObjectID) ([]*models.Trip, error)
	ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Trip, error)

	// Accept performs the conditional claim: the update matches only while
	// status is still "requested", so exactly one of two racing drivers wins.
	// Returns the updated trip, or false when the condition did not match.
	Accept(ctx context.Context, id, driverID primitive.ObjectID) (*models.Trip, bool, error)

	// TransitionStatus moves status from -> to, stamping the transition time.
	// Returns false when the trip was not in the expected status.
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to models.TripStatus) (bool, error)

	// Admin operations
	GetStats(ctx context.Context) (*TripStats, error)
	DeleteAll(ctx context.Context) (int64, error)
}
