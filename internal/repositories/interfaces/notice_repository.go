package interfaces

import (
	"context"

	"cityride/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NoticeRepository interface {
	Create(ctx context.Context, notice *models.AdminNotice) error
	ListByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]*models.AdminNotice, error)

	// MarkRead flips the read flag; returns false when no notice with that id
	// belongs to the recipient.
	MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) (bool, error)
}
