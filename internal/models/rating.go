package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Rating struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TripID      primitive.ObjectID `json:"trip_id" bson:"trip_id" validate:"required"`
	RaterID     primitive.ObjectID `json:"rater_id" bson:"rater_id" validate:"required"`
	RatedUserID primitive.ObjectID `json:"rated_user_id" bson:"rated_user_id" validate:"required"`
	Stars       int                `json:"stars" bson:"stars" validate:"required,min=1,max=5"`
	Reason      string             `json:"reason" bson:"reason"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// LowRatingView joins a low rating with the people involved and the trip
// route, for admin triage.
type LowRatingView struct {
	Rating      *Rating `json:"rating"`
	RaterName   string  `json:"rater_name"`
	RatedName   string  `json:"rated_name"`
	Pickup      string  `json:"pickup"`
	Destination string  `json:"destination"`
	Alerted     bool    `json:"alerted"`
}
