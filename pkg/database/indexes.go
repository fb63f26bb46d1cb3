package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// indexes on ratings.trip_id and admin_alerts.rating_id back the one-rating-
// per-trip and one-alert-per-rating invariants at the storage layer, so a
// racing duplicate insert fails even past the service-level checks.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		"trips": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "requested_at", Value: -1}}},
			{Keys: bson.D{{Key: "passenger_id", Value: 1}, {Key: "requested_at", Value: -1}}},
			{Keys: bson.D{{Key: "driver_id", Value: 1}, {Key: "requested_at", Value: -1}}},
		},
		"chat_messages": {
			{Keys: bson.D{{Key: "trip_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		"ratings": {
			{
				Keys:    bson.D{{Key: "trip_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "rated_user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "stars", Value: 1}}},
		},
		"admin_alerts": {
			{
				Keys:    bson.D{{Key: "rating_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "target_user_id", Value: 1}, {Key: "read", Value: 1}}},
		},
		"reports": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "reporter_id", Value: 1}}},
			{Keys: bson.D{{Key: "reported_user_id", Value: 1}}},
		},
		"admin_notices": {
			{Keys: bson.D{{Key: "recipient_id", Value: 1}, {Key: "read", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		_, err := m.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}

	return nil
}
