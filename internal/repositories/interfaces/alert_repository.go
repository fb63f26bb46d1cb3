package interfaces

import (
	"context"

	"cityride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AlertRepository interface {
	// Create returns a conflict error when an alert already exists for the
	// rating (unique index on rating_id).
	Create(ctx context.Context, alert *models.AdminAlert) error
	ExistsByRating(ctx context.Context, ratingID primitive.ObjectID) (bool, error)
	ExistingRatingIDs(ctx context.Context, ratingIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error)
	ListByTarget(ctx context.Context, targetUserID primitive.ObjectID) ([]*models.AdminAlert, error)

	// MarkRead flips the read flag; returns false when no alert with that id
	// belongs to the target user.
	MarkRead(ctx context.Context, id, targetUserID primitive.ObjectID) (bool, error)
}
