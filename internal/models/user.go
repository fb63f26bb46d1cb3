package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string
type DriverStatus string

const (
	RolePassenger UserRole = "passenger"
	RoleDriver    UserRole = "driver"
	RoleAdmin     UserRole = "admin"

	DriverStatusOnline  DriverStatus = "online"
	DriverStatusOffline DriverStatus = "offline"
	DriverStatusBusy    DriverStatus = "busy"
)

// RatingResetWindow is the number of completed trips after which a user's
// rolling-average rating state starts a fresh window.
const RatingResetWindow = 100

type User struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName       string             `json:"first_name" bson:"first_name" validate:"required,min=2,max=50"`
	LastName        string             `json:"last_name" bson:"last_name" validate:"required,min=2,max=50"`
	Email           string             `json:"email" bson:"email" validate:"required,email"`
	Password        string             `json:"-" bson:"password"`
	Role            UserRole           `json:"role" bson:"role" validate:"required"`
	IsActive        bool               `json:"is_active" bson:"is_active" default:"true"`
	Rating          float64            `json:"rating" bson:"rating" default:"5.0"`
	RatingCount     int64              `json:"rating_count" bson:"rating_count" default:"0"`
	CompletedTrips  int64              `json:"completed_trips" bson:"completed_trips" default:"0"`
	TripsSinceReset int64              `json:"trips_since_reset" bson:"trips_since_reset" default:"0"`
	DriverStatus    DriverStatus       `json:"driver_status,omitempty" bson:"driver_status,omitempty"`
	PhotoURL        string             `json:"photo_url" bson:"photo_url"`
	Location        *DriverLocation    `json:"location,omitempty" bson:"location,omitempty"`
	LastLoginAt     *time.Time         `json:"last_login_at" bson:"last_login_at"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

type DriverLocation struct {
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsDriver() bool {
	return u.Role == RoleDriver
}

// UserSummary is the counterpart view surfaced alongside trips: the same
// fields for the "available" and "mine" listings.
type UserSummary struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	Rating   float64            `json:"rating"`
	PhotoURL string             `json:"photo_url"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:       u.ID,
		Name:     u.FullName(),
		Rating:   u.Rating,
		PhotoURL: u.PhotoURL,
	}
}

var driverStatusTransitions = map[DriverStatus][]DriverStatus{
	DriverStatusOffline: {DriverStatusOnline},
	DriverStatusOnline:  {DriverStatusOffline, DriverStatusBusy},
	DriverStatusBusy:    {DriverStatusOnline},
}

// CanTransitionDriverStatus reports whether a driver may move between the two
// statuses. Busy is entered and left only by trip accept/complete, but those
// paths go through the same table.
func CanTransitionDriverStatus(from, to DriverStatus) bool {
	for _, allowed := range driverStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
