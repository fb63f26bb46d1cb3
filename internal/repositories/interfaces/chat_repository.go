package interfaces

import (
	"context"
	"time"

	"cityride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error

	// ListByTrip returns messages ordered by insertion time. A non-nil since
	// limits the result to messages created after it, for incremental polls.
	ListByTrip(ctx context.Context, tripID primitive.ObjectID, since *time.Time) ([]*models.ChatMessage, error)

	DeleteAll(ctx context.Context) (int64, error)
}
