package interfaces

import (
	"context"

	"cityride/internal/models"
	"cityride/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Counterpart enrichment
	GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.UserSummary, error)

	// Driver state
	SetDriverStatus(ctx context.Context, id primitive.ObjectID, status models.DriverStatus) error
	UpdateLocation(ctx context.Context, id primitive.ObjectID, location *models.DriverLocation) error

	// Rating window. ApplyRating folds one more star value into the rolling
	// average; IncrementCompletedTrips bumps the trip counters and resets the
	// window state every models.RatingResetWindow completed trips.
	ApplyRating(ctx context.Context, id primitive.ObjectID, stars int) (*models.User, error)
	IncrementCompletedTrips(ctx context.Context, id primitive.ObjectID) error

	// Admin operations
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	CountByRole(ctx context.Context) (map[models.UserRole]int64, error)
	DeleteNonAdmins(ctx context.Context) (int64, error)
}
