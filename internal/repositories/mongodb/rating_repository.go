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

type ratingRepository struct {
	collection *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) interfaces.RatingRepository {
	return &ratingRepository{
		collection: db.Collection("ratings"),
	}
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	rating.ID = primitive.NewObjectID()
	rating.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, rating)
	if err != nil {
		// The unique index on trip_id is the server-side idempotence guard.
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("trip has already been rated")
		}
		return apperrors.Internal(err, "failed to create rating")
	}

	return nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error) {
	var rating models.Rating
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rating)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("rating")
		}
		return nil, apperrors.Internal(err, "failed to get rating")
	}

	return &rating, nil
}

func (r *ratingRepository) ExistsByTrip(ctx context.Context, tripID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"trip_id": tripID})
	if err != nil {
		return false, apperrors.Internal(err, "failed to check rating existence")
	}
	return count > 0, nil
}

func (r *ratingRepository) ListLow(ctx context.Context, below int) ([]*models.Rating, error) {
	filter := bson.M{"stars": bson.M{"$lt": below}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list low ratings")
	}
	defer cursor.Close(ctx)

	ratings := []*models.Rating{}
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, apperrors.Internal(err, "failed to decode ratings")
	}

	return ratings, nil
}

func (r *ratingRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.Internal(err, "failed to bulk delete ratings")
	}
	return result.DeletedCount, nil
}
