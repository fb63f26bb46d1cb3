package interfaces

import (
	"context"

	"cityride/internal/models"
	"cityride/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	ListByReporter(ctx context.Context, reporterID primitive.ObjectID) ([]*models.Report, error)
	ListByReported(ctx context.Context, reportedUserID primitive.ObjectID) ([]*models.Report, error)
	ListAll(ctx context.Context, status models.ReportStatus, params *utils.PaginationParams) ([]*models.Report, int64, error)

	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
