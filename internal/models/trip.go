package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TripStatus string

const (
	TripStatusRequested  TripStatus = "requested"
	TripStatusAccepted   TripStatus = "accepted"
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
)

type GeoPoint struct {
	Address   string  `json:"address" bson:"address" validate:"required"`
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

type Trip struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	PassengerID    primitive.ObjectID  `json:"passenger_id" bson:"passenger_id" validate:"required"`
	DriverID       *primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	Pickup         GeoPoint            `json:"pickup" bson:"pickup" validate:"required"`
	Destination    GeoPoint            `json:"destination" bson:"destination" validate:"required"`
	EstimatedPrice float64             `json:"estimated_price" bson:"estimated_price"`
	Status         TripStatus          `json:"status" bson:"status" default:"requested"`
	RequestedAt    time.Time           `json:"requested_at" bson:"requested_at"`
	AcceptedAt     *time.Time          `json:"accepted_at" bson:"accepted_at"`
	StartedAt      *time.Time          `json:"started_at" bson:"started_at"`
	CompletedAt    *time.Time          `json:"completed_at" bson:"completed_at"`
	CancelledAt    *time.Time          `json:"cancelled_at" bson:"cancelled_at"`
	CreatedAt      time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at" bson:"updated_at"`
}

// IsActive reports whether the trip is in a status that allows chat.
func (t *Trip) IsActive() bool {
	return t.Status == TripStatusAccepted || t.Status == TripStatusInProgress
}

// IsParticipant reports whether the user is the passenger or the assigned driver.
func (t *Trip) IsParticipant(userID primitive.ObjectID) bool {
	if t.PassengerID == userID {
		return true
	}
	return t.DriverID != nil && *t.DriverID == userID
}

// CounterpartID returns the other participant from the caller's point of view.
func (t *Trip) CounterpartID(userID primitive.ObjectID) *primitive.ObjectID {
	if t.PassengerID == userID {
		return t.DriverID
	}
	return &t.PassengerID
}

// TripView is a trip enriched with counterpart user info. The same shape
// serves the driver-facing "available" listing (counterpart = passenger) and
// the role-aware "mine" listing.
type TripView struct {
	Trip        *Trip        `json:"trip"`
	Counterpart *UserSummary `json:"counterpart,omitempty"`
}
