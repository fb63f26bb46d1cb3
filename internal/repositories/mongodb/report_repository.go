package mongodb

import (
	"context"
	"time"

	"cityride/internal/apperrors"
	"cityride/internal/models"
	"cityride/internal/repositories/interfaces"
	"cityride/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reportRepository struct {
	collection *mongo.Collection
}

func NewReportRepository(db *mongo.Database) interfaces.ReportRepository {
	return &reportRepository{
		collection: db.Collection("reports"),
	}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt

	_, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return apperrors.Internal(err, "failed to create report")
	}

	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	var report models.Report
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("report")
		}
		return nil, apperrors.Internal(err, "failed to get report")
	}

	return &report, nil
}

func (r *reportRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return apperrors.Internal(err, "failed to update report")
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("report")
	}

	return nil
}

func (r *reportRepository) ListByReporter(ctx context.Context, reporterID primitive.ObjectID) ([]*models.Report, error) {
	return r.find(ctx, bson.M{"reporter_id": reporterID})
}

func (r *reportRepository) ListByReported(ctx context.Context, reportedUserID primitive.ObjectID) ([]*models.Report, error) {
	return r.find(ctx, bson.M{"reported_user_id": reportedUserID})
}

func (r *reportRepository) ListAll(ctx context.Context, status models.ReportStatus, params *utils.PaginationParams) ([]*models.Report, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Internal(err, "failed to count reports")
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, apperrors.Internal(err, "failed to list reports")
	}
	defer cursor.Close(ctx)

	reports := []*models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, 0, apperrors.Internal(err, "failed to decode reports")
	}

	return reports, total, nil
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.Internal(err, "failed to count reports")
	}
	return count, nil
}

func (r *reportRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.Internal(err, "failed to bulk delete reports")
	}
	return result.DeletedCount, nil
}

func (r *reportRepository) find(ctx context.Context, filter bson.M) ([]*models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list reports")
	}
	defer cursor.Close(ctx)

	reports := []*models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, apperrors.Internal(err, "failed to decode reports")
	}

	return reports, nil
}
