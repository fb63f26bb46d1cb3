package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxChatMessageLength = 250

// ChatMessage is one entry in a trip's append-only message log. Sender name
// and role are snapshotted at send time so the log reads the same even if the
// sender's profile changes later.
type ChatMessage struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TripID     primitive.ObjectID `json:"trip_id" bson:"trip_id" validate:"required"`
	SenderID   primitive.ObjectID `json:"sender_id" bson:"sender_id" validate:"required"`
	SenderName string             `json:"sender_name" bson:"sender_name"`
	SenderRole UserRole           `json:"sender_role" bson:"sender_role"`
	Text       string             `json:"text" bson:"text" validate:"required,max=250"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
