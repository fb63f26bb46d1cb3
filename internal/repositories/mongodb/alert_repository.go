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

type alertRepository struct {
	collection *mongo.Collection
}

func NewAlertRepository(db *mongo.Database) interfaces.AlertRepository {
	return &alertRepository{
		collection: db.Collection("admin_alerts"),
	}
}

func (r *alertRepository) Create(ctx context.Context, alert *models.AdminAlert) error {
	alert.ID = primitive.NewObjectID()
	alert.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		// One alert per rating is a hard invariant, backed by a unique index.
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("rating already has an alert")
		}
		return apperrors.Internal(err, "failed to create alert")
	}

	return nil
}

func (r *alertRepository) ExistsByRating(ctx context.Context, ratingID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"rating_id": ratingID})
	if err != nil {
		return false, apperrors.Internal(err, "failed to check alert existence")
	}
	return count > 0, nil
}

func (r *alertRepository) ExistingRatingIDs(ctx context.Context, ratingIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	existing := make(map[primitive.ObjectID]bool, len(ratingIDs))
	if len(ratingIDs) == 0 {
		return existing, nil
	}

	opts := options.Find().SetProjection(bson.M{"rating_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"rating_id": bson.M{"$in": ratingIDs}}, opts)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to load alerted ratings")
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row struct {
			RatingID primitive.ObjectID `bson:"rating_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, apperrors.Internal(err, "failed to decode alerted rating")
		}
		existing[row.RatingID] = true
	}

	return existing, cursor.Err()
}

func (r *alertRepository) ListByTarget(ctx context.Context, targetUserID primitive.ObjectID) ([]*models.AdminAlert, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"target_user_id": targetUserID}, opts)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list alerts")
	}
	defer cursor.Close(ctx)

	alerts := []*models.AdminAlert{}
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, apperrors.Internal(err, "failed to decode alerts")
	}

	return alerts, nil
}

func (r *alertRepository) MarkRead(ctx context.Context, id, targetUserID primitive.ObjectID) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "target_user_id": targetUserID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return false, apperrors.Internal(err, "failed to mark alert read")
	}

	return result.MatchedCount > 0, nil
}
