package mongodb

import (
	"context"
	"time"

	"cityride/internal/apperrors"
	"cityride/internal/models"
	"cityride/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type chatRepository struct {
	collection *mongo.Collection
}

func NewChatRepository(db *mongo.Database) interfaces.ChatRepository {
	return &chatRepository{
		collection: db.Collection("chat_messages"),
	}
}

func (r *chatRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return apperrors.Internal(err, "failed to create chat message")
	}

	return nil
}

func (r *chatRepository) ListByTrip(ctx context.Context, tripID primitive.ObjectID, since *time.Time) ([]*models.ChatMessage, error) {
	filter := bson.M{"trip_id": tripID}
	if since != nil {
		filter["created_at"] = bson.M{"$gt": *since}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list chat messages")
	}
	defer cursor.Close(ctx)

	messages := []*models.ChatMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, apperrors.Internal(err, "failed to decode chat messages")
	}

	return messages, nil
}

func (r *chatRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.Internal(err, "failed to bulk delete chat messages")
	}
	return result.DeletedCount, nil
}
