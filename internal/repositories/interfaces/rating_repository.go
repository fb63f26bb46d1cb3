package interfaces

import (
	"context"

	"cityride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingRepository interface {
	// Create returns a conflict error when a rating already exists for the
	// trip (unique index on trip_id).
	Create(ctx context.Context, rating *models.Rating) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error)
	ExistsByTrip(ctx context.Context, tripID primitive.ObjectID) (bool, error)

	// ListLow returns ratings below the given star count, newest first.
	ListLow(ctx context.Context, below int) ([]*models.Rating, error)

	DeleteAll(ctx context.Context) (int64, error)
}
