package mongodb

import (
	"context"
	"time"

	"cityride/internal/apperrors"
	"cityride/internal/models"
	"cityride/internal/repositories/interfaces"
	"cityride/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tripCacheTTL = 5 * time.Minute

type tripRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewTripRepository(db *mongo.Database, cache services.CacheService) interfaces.TripRepository {
	return &tripRepository{
		collection: db.Collection("trips"),
		cache:      cache,
	}
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	trip.ID = primitive.NewObjectID()
	trip.RequestedAt = time.Now()
	trip.CreatedAt = trip.RequestedAt
	trip.UpdatedAt = trip.RequestedAt

	_, err := r.collection.InsertOne(ctx, trip)
	if err != nil {
		return apperrors.Internal(err, "failed to create trip")
	}

	r.cacheTrip(ctx, trip)
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	// Active trips are polled every few seconds; serve those from cache.
	var cached models.Trip
	if r.cache.Get(ctx, tripCacheKey(id), &cached) {
		return &cached, nil
	}

	var trip models.Trip
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("trip")
		}
		return nil, apperrors.Internal(err, "failed to get trip")
	}

	r.cacheTrip(ctx, &trip)
	return &trip, nil
}

func (r *tripRepository) ListRequested(ctx context.Context) ([]*models.Trip, error) {
	filter := bson.M{"status": models.TripStatusRequested, "driver_id": nil}
	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})

	return r.find(ctx, filter, opts)
}

func (r *tripRepository) ListByPassenger(ctx context.Context, passengerID primitive.ObjectID) ([]*models.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})
	return r.find(ctx, bson.M{"passenger_id": passengerID}, opts)
}

func (r *tripRepository) ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Trip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})
	return r.find(ctx, bson.M{"driver_id": driverID}, opts)
}

// Accept claims the trip with a conditional update: the filter matches only
// while the trip is still requested and unassigned, so of two racing drivers
// exactly one sees the document. The caller turns the false return into a
// Conflict once it knows the trip exists.
func (r *tripRepository) Accept(ctx context.Context, id, driverID primitive.ObjectID) (*models.Trip, bool, error) {
	now := time.Now()
	filter := bson.M{
		"_id":       id,
		"status":    models.TripStatusRequested,
		"driver_id": nil,
	}
	update := bson.M{"$set": bson.M{
		"status":      models.TripStatusAccepted,
		"driver_id":   driverID,
		"accepted_at": now,
		"updated_at":  now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var trip models.Trip
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&trip)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, false, nil
		}
		return nil, false, apperrors.Internal(err, "failed to accept trip")
	}

	r.invalidate(ctx, id)
	return &trip, true, nil
}

func (r *tripRepository) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to models.TripStatus) (bool, error) {
	now := time.Now()
	updates := bson.M{
		"status":     to,
		"updated_at": now,
	}

	switch to {
	case models.TripStatusInProgress:
		updates["started_at"] = now
	case models.TripStatusCompleted:
		updates["completed_at"] = now
	case models.TripStatusCancelled:
		updates["cancelled_at"] = now
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": updates},
	)
	if err != nil {
		return false, apperrors.Internal(err, "failed to update trip status")
	}

	r.invalidate(ctx, id)
	return result.ModifiedCount > 0, nil
}

func (r *tripRepository) GetStats(ctx context.Context) (*interfaces.TripStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":     "$status",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$estimated_price"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to aggregate trip stats")
	}
	defer cursor.Close(ctx)

	stats := &interfaces.TripStats{
		ByStatus: make(map[models.TripStatus]int64),
	}

	for cursor.Next(ctx) {
		var row struct {
			Status  models.TripStatus `bson:"_id"`
			Count   int64             `bson:"count"`
			Revenue float64           `bson:"revenue"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, apperrors.Internal(err, "failed to decode trip stats")
		}

		stats.ByStatus[row.Status] = row.Count
		stats.Total += row.Count
		if row.Status == models.TripStatusCompleted {
			stats.Revenue = row.Revenue
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Internal(err, "failed to read trip stats")
	}

	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.ByStatus[models.TripStatusCompleted]) / float64(stats.Total)
	}

	return stats, nil
}

func (r *tripRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.Internal(err, "failed to bulk delete trips")
	}
	return result.DeletedCount, nil
}

func (r *tripRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Trip, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list trips")
	}
	defer cursor.Close(ctx)

	trips := []*models.Trip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, apperrors.Internal(err, "failed to decode trips")
	}

	return trips, nil
}

func (r *tripRepository) cacheTrip(ctx context.Context, trip *models.Trip) {
	switch trip.Status {
	case models.TripStatusRequested, models.TripStatusAccepted, models.TripStatusInProgress:
		r.cache.Set(ctx, tripCacheKey(trip.ID), trip, tripCacheTTL)
	}
}

func (r *tripRepository) invalidate(ctx context.Context, id primitive.ObjectID) {
	r.cache.Delete(ctx, tripCacheKey(id))
}

func tripCacheKey(id primitive.ObjectID) string {
	return "trip:" + id.Hex()
}
