package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminAlert is an admin-initiated notice to a driver about one of their low
// ratings. At most one alert exists per rating.
type AdminAlert struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TargetUserID primitive.ObjectID `json:"target_user_id" bson:"target_user_id" validate:"required"`
	RatingID     primitive.ObjectID `json:"rating_id" bson:"rating_id" validate:"required"`
	AdminID      primitive.ObjectID `json:"admin_id" bson:"admin_id" validate:"required"`
	Message      string             `json:"message" bson:"message" validate:"required"`
	Read         bool               `json:"read" bson:"read" default:"false"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
