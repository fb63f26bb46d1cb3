package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportStatus string

const (
	ReportStatusPending     ReportStatus = "pending"
	ReportStatusUnderReview ReportStatus = "under_review"
	ReportStatusResolved    ReportStatus = "resolved"
	ReportStatusDismissed   ReportStatus = "dismissed"
)

type Report struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	ReporterID      primitive.ObjectID  `json:"reporter_id" bson:"reporter_id" validate:"required"`
	ReportedUserID  primitive.ObjectID  `json:"reported_user_id" bson:"reported_user_id" validate:"required"`
	TripID          *primitive.ObjectID `json:"trip_id,omitempty" bson:"trip_id,omitempty"`
	Title           string              `json:"title" bson:"title" validate:"required,max=120"`
	Description     string              `json:"description" bson:"description" validate:"required,max=2000"`
	Status          ReportStatus        `json:"status" bson:"status" default:"pending"`
	AdminID         *primitive.ObjectID `json:"admin_id,omitempty" bson:"admin_id,omitempty"`
	AdminMessage    string              `json:"admin_message" bson:"admin_message"`
	UserResponse    string              `json:"user_response" bson:"user_response"`
	ResponseAllowed bool                `json:"response_allowed" bson:"response_allowed" default:"false"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
}

// IsOpen reports whether the report still accepts admin triage actions.
func (r *Report) IsOpen() bool {
	return r.Status == ReportStatusPending || r.Status == ReportStatusUnderReview
}
