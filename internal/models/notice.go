package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminNotice is a one-way message from an admin to a user. Only the read
// flag ever changes after creation.
type AdminNotice struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RecipientID primitive.ObjectID `json:"recipient_id" bson:"recipient_id" validate:"required"`
	AdminID     primitive.ObjectID `json:"admin_id" bson:"admin_id" validate:"required"`
	Message     string             `json:"message" bson:"message" validate:"required"`
	Read        bool               `json:"read" bson:"read" default:"false"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
