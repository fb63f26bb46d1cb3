package mongodb

import (
	"context"
	"time"

	"cityride/internal/apperrors"
	"cityride/internal/models"
	"cityride/internal/repositories/interfaces"
	"cityride/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("email %s is already registered", user.Email)
		}
		return apperrors.Internal(err, "failed to create user")
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Internal(err, "failed to get user")
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Internal(err, "failed to get user by email")
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return apperrors.Internal(err, "failed to update user")
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("user")
	}

	return nil
}

func (r *userRepository) GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.UserSummary, error) {
	summaries := make(map[primitive.ObjectID]*models.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	opts := options.Find().SetProjection(bson.M{
		"first_name": 1,
		"last_name":  1,
		"rating":     1,
		"photo_url":  1,
	})

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to load user summaries")
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, apperrors.Internal(err, "failed to decode user summary")
		}
		summaries[user.ID] = user.Summary()
	}

	return summaries, cursor.Err()
}

func (r *userRepository) SetDriverStatus(ctx context.Context, id primitive.ObjectID, status models.DriverStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"driver_status": status})
}

func (r *userRepository) UpdateLocation(ctx context.Context, id primitive.ObjectID, location *models.DriverLocation) error {
	location.UpdatedAt = time.Now()
	return r.Update(ctx, id, map[string]interface{}{"location": location})
}

// ApplyRating folds one star value into the user's windowed average:
// avg' = (avg*count + stars) / (count + 1). Each entity has a single writer
// per request, so a read-modify-write suffices here.
func (r *userRepository) ApplyRating(ctx context.Context, id primitive.ObjectID, stars int) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count := user.RatingCount
	average := user.Rating
	if count == 0 {
		average = float64(stars)
	} else {
		average = (average*float64(count) + float64(stars)) / float64(count+1)
	}

	err = r.Update(ctx, id, map[string]interface{}{
		"rating":       average,
		"rating_count": count + 1,
	})
	if err != nil {
		return nil, err
	}

	user.Rating = average
	user.RatingCount = count + 1
	return user, nil
}

// IncrementCompletedTrips bumps both trip counters and resets the rating
// window once trips_since_reset reaches the window size. The displayed
// rating keeps its last value until the next rating opens the fresh window.
func (r *userRepository) IncrementCompletedTrips(ctx context.Context, id primitive.ObjectID) error {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"completed_trips":   user.CompletedTrips + 1,
		"trips_since_reset": user.TripsSinceReset + 1,
	}
	if user.TripsSinceReset+1 >= models.RatingResetWindow {
		updates["trips_since_reset"] = int64(0)
		updates["rating_count"] = int64(0)
	}

	return r.Update(ctx, id, updates)
}

func (r *userRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, apperrors.Internal(err, "failed to count users")
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, params.GetSortOptions())
	if err != nil {
		return nil, 0, apperrors.Internal(err, "failed to list users")
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, apperrors.Internal(err, "failed to decode users")
	}

	return users, total, nil
}

func (r *userRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": active})
}

func (r *userRepository) CountByRole(ctx context.Context) (map[models.UserRole]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$role",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to count users by role")
	}
	defer cursor.Close(ctx)

	counts := make(map[models.UserRole]int64)
	for cursor.Next(ctx) {
		var row struct {
			Role  models.UserRole `bson:"_id"`
			Count int64           `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, apperrors.Internal(err, "failed to decode role count")
		}
		counts[row.Role] = row.Count
	}

	return counts, cursor.Err()
}

// DeleteNonAdmins is the bulk moderation delete; admin accounts are excluded.
func (r *userRepository) DeleteNonAdmins(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"role": bson.M{"$ne": models.RoleAdmin}})
	if err != nil {
		return 0, apperrors.Internal(err, "failed to bulk delete users")
	}
	return result.DeletedCount, nil
}
