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

type noticeRepository struct {
	collection *mongo.Collection
}

func NewNoticeRepository(db *mongo.Database) interfaces.NoticeRepository {
	return &noticeRepository{
		collection: db.Collection("admin_notices"),
	}
}

func (r *noticeRepository) Create(ctx context.Context, notice *models.AdminNotice) error {
	notice.ID = primitive.NewObjectID()
	notice.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, notice)
	if err != nil {
		return apperrors.Internal(err, "failed to create notice")
	}

	return nil
}

func (r *noticeRepository) ListByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]*models.AdminNotice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"recipient_id": recipientID}, opts)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list notices")
	}
	defer cursor.Close(ctx)

	notices := []*models.AdminNotice{}
	if err := cursor.All(ctx, &notices); err != nil {
		return nil, apperrors.Internal(err, "failed to decode notices")
	}

	return notices, nil
}

func (r *noticeRepository) MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return false, apperrors.Internal(err, "failed to mark notice read")
	}

	return result.MatchedCount > 0, nil
}
