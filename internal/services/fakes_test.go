package services

import (
	"context"
	"sync"
	"time"

	"cityride/internal/apperrors"
	"cityride/internal/models"
	"cityride/internal/repositories/interfaces"
	"cityride/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories backing the service tests. They honor the same
// contracts as the mongodb implementations: not-found and conflict errors
// come from apperrors, Accept is a conditional claim, and the rating window
// resets every models.RatingResetWindow completed trips.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.Conflict("email %s is already registered", user.Email)
		}
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}

	for key, value := range updates {
		switch key {
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		case "photo_url":
			user.PhotoURL = value.(string)
		case "last_login_at":
			t := value.(time.Time)
			user.LastLoginAt = &t
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) GetSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	summaries := make(map[primitive.ObjectID]*models.UserSummary, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			summaries[id] = user.Summary()
		}
	}
	return summaries, nil
}

func (r *fakeUserRepo) SetDriverStatus(ctx context.Context, id primitive.ObjectID, status models.DriverStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}
	user.DriverStatus = status
	return nil
}

func (r *fakeUserRepo) UpdateLocation(ctx context.Context, id primitive.ObjectID, location *models.DriverLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}
	location.UpdatedAt = time.Now()
	user.Location = location
	return nil
}

func (r *fakeUserRepo) ApplyRating(ctx context.Context, id primitive.ObjectID, stars int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}

	if user.RatingCount == 0 {
		user.Rating = float64(stars)
	} else {
		user.Rating = (user.Rating*float64(user.RatingCount) + float64(stars)) / float64(user.RatingCount+1)
	}
	user.RatingCount++

	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) IncrementCompletedTrips(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}

	user.CompletedTrips++
	user.TripsSinceReset++
	if user.TripsSinceReset >= models.RatingResetWindow {
		user.TripsSinceReset = 0
		user.RatingCount = 0
	}
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.NotFound("user")
	}
	user.IsActive = active
	return nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context) (map[models.UserRole]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[models.UserRole]int64)
	for _, user := range r.users {
		counts[user.Role]++
	}
	return counts, nil
}

func (r *fakeUserRepo) DeleteNonAdmins(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, user := range r.users {
		if user.Role != models.RoleAdmin {
			delete(r.users, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[primitive.ObjectID]*models.Trip
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[primitive.ObjectID]*models.Trip)}
}

func (r *fakeTripRepo) Create(ctx context.Context, trip *models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip.ID = primitive.NewObjectID()
	trip.RequestedAt = time.Now()
	trip.CreatedAt = trip.RequestedAt
	trip.UpdatedAt = trip.RequestedAt
	copied := *trip
	r.trips[trip.ID] = &copied
	return nil
}

func (r *fakeTripRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, ok := r.trips[id]
	if !ok {
		return nil, apperrors.NotFound("trip")
	}
	copied := *trip
	return &copied, nil
}

func (r *fakeTripRepo) ListRequested(ctx context.Context) ([]*models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var trips []*models.Trip
	for _, trip := range r.trips {
		if trip.Status == models.TripStatusRequested {
			copied := *trip
			trips = append(trips, &copied)
		}
	}
	return trips, nil
}

func (r *fakeTripRepo) ListByPassenger(ctx context.Context, passengerID primitive.ObjectID) ([]*models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var trips []*models.Trip
	for _, trip := range r.trips {
		if trip.PassengerID == passengerID {
			copied := *trip
			trips = append(trips, &copied)
		}
	}
	return trips, nil
}

func (r *fakeTripRepo) ListByDriver(ctx context.Context, driverID primitive.ObjectID) ([]*models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var trips []*models.Trip
	for _, trip := range r.trips {
		if trip.DriverID != nil && *trip.DriverID == driverID {
			copied := *trip
			trips = append(trips, &copied)
		}
	}
	return trips, nil
}

func (r *fakeTripRepo) Accept(ctx context.Context, id, driverID primitive.ObjectID) (*models.Trip, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, ok := r.trips[id]
	if !ok {
		return nil, false, apperrors.NotFound("trip")
	}
	if trip.Status != models.TripStatusRequested || trip.DriverID != nil {
		return nil, false, nil
	}

	now := time.Now()
	trip.DriverID = &driverID
	trip.Status = models.TripStatusAccepted
	trip.AcceptedAt = &now
	trip.UpdatedAt = now

	copied := *trip
	return &copied, true, nil
}

func (r *fakeTripRepo) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to models.TripStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, ok := r.trips[id]
	if !ok {
		return false, apperrors.NotFound("trip")
	}
	if trip.Status != from {
		return false, nil
	}

	now := time.Now()
	trip.Status = to
	trip.UpdatedAt = now
	switch to {
	case models.TripStatusInProgress:
		trip.StartedAt = &now
	case models.TripStatusCompleted:
		trip.CompletedAt = &now
	case models.TripStatusCancelled:
		trip.CancelledAt = &now
	}
	return true, nil
}

func (r *fakeTripRepo) GetStats(ctx context.Context) (*interfaces.TripStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &interfaces.TripStats{ByStatus: make(map[models.TripStatus]int64)}
	for _, trip := range r.trips {
		stats.Total++
		stats.ByStatus[trip.Status]++
		if trip.Status == models.TripStatusCompleted {
			stats.Revenue += trip.EstimatedPrice
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.ByStatus[models.TripStatusCompleted]) / float64(stats.Total)
	}
	return stats, nil
}

func (r *fakeTripRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.trips))
	r.trips = make(map[primitive.ObjectID]*models.Trip)
	return deleted, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	messages []*models.ChatMessage
}

func newFakeChatRepo() *fakeChatRepo { return &fakeChatRepo{} }

func (r *fakeChatRepo) Create(ctx context.Context, message *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeChatRepo) ListByTrip(ctx context.Context, tripID primitive.ObjectID, since *time.Time) ([]*models.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var messages []*models.ChatMessage
	for _, message := range r.messages {
		if message.TripID != tripID {
			continue
		}
		if since != nil && !message.CreatedAt.After(*since) {
			continue
		}
		copied := *message
		messages = append(messages, &copied)
	}
	return messages, nil
}

func (r *fakeChatRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.messages))
	r.messages = nil
	return deleted, nil
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings map[primitive.ObjectID]*models.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[primitive.ObjectID]*models.Rating)}
}

func (r *fakeRatingRepo) Create(ctx context.Context, rating *models.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.ratings {
		if existing.TripID == rating.TripID {
			return apperrors.Conflict("trip has already been rated")
		}
	}

	rating.ID = primitive.NewObjectID()
	rating.CreatedAt = time.Now()
	copied := *rating
	r.ratings[rating.ID] = &copied
	return nil
}

func (r *fakeRatingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rating, ok := r.ratings[id]
	if !ok {
		return nil, apperrors.NotFound("rating")
	}
	copied := *rating
	return &copied, nil
}

func (r *fakeRatingRepo) ExistsByTrip(ctx context.Context, tripID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rating := range r.ratings {
		if rating.TripID == tripID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRatingRepo) ListLow(ctx context.Context, below int) ([]*models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ratings []*models.Rating
	for _, rating := range r.ratings {
		if rating.Stars < below {
			copied := *rating
			ratings = append(ratings, &copied)
		}
	}
	return ratings, nil
}

func (r *fakeRatingRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.ratings))
	r.ratings = make(map[primitive.ObjectID]*models.Rating)
	return deleted, nil
}

type fakeAlertRepo struct {
	mu     sync.Mutex
	alerts map[primitive.ObjectID]*models.AdminAlert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: make(map[primitive.ObjectID]*models.AdminAlert)}
}

func (r *fakeAlertRepo) Create(ctx context.Context, alert *models.AdminAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.alerts {
		if existing.RatingID == alert.RatingID {
			return apperrors.Conflict("rating already has an alert")
		}
	}

	alert.ID = primitive.NewObjectID()
	alert.CreatedAt = time.Now()
	copied := *alert
	r.alerts[alert.ID] = &copied
	return nil
}

func (r *fakeAlertRepo) ExistsByRating(ctx context.Context, ratingID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, alert := range r.alerts {
		if alert.RatingID == ratingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAlertRepo) ExistingRatingIDs(ctx context.Context, ratingIDs []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[primitive.ObjectID]bool)
	for _, alert := range r.alerts {
		for _, ratingID := range ratingIDs {
			if alert.RatingID == ratingID {
				existing[ratingID] = true
			}
		}
	}
	return existing, nil
}

func (r *fakeAlertRepo) ListByTarget(ctx context.Context, targetUserID primitive.ObjectID) ([]*models.AdminAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var alerts []*models.AdminAlert
	for _, alert := range r.alerts {
		if alert.TargetUserID == targetUserID {
			copied := *alert
			alerts = append(alerts, &copied)
		}
	}
	return alerts, nil
}

func (r *fakeAlertRepo) MarkRead(ctx context.Context, id, targetUserID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert, ok := r.alerts[id]
	if !ok || alert.TargetUserID != targetUserID {
		return false, nil
	}
	alert.Read = true
	return true, nil
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[primitive.ObjectID]*models.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[primitive.ObjectID]*models.Report)}
}

func (r *fakeReportRepo) Create(ctx context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	copied := *report
	r.reports[report.ID] = &copied
	return nil
}

func (r *fakeReportRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, apperrors.NotFound("report")
	}
	copied := *report
	return &copied, nil
}

func (r *fakeReportRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	report, ok := r.reports[id]
	if !ok {
		return apperrors.NotFound("report")
	}

	for key, value := range updates {
		switch key {
		case "status":
			report.Status = value.(models.ReportStatus)
		case "admin_id":
			adminID := value.(primitive.ObjectID)
			report.AdminID = &adminID
		case "admin_message":
			report.AdminMessage = value.(string)
		case "user_response":
			report.UserResponse = value.(string)
		case "response_allowed":
			report.ResponseAllowed = value.(bool)
		}
	}
	report.UpdatedAt = time.Now()
	return nil
}

func (r *fakeReportRepo) ListByReporter(ctx context.Context, reporterID primitive.ObjectID) ([]*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reports []*models.Report
	for _, report := range r.reports {
		if report.ReporterID == reporterID {
			copied := *report
			reports = append(reports, &copied)
		}
	}
	return reports, nil
}

func (r *fakeReportRepo) ListByReported(ctx context.Context, reportedUserID primitive.ObjectID) ([]*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reports []*models.Report
	for _, report := range r.reports {
		if report.ReportedUserID == reportedUserID {
			copied := *report
			reports = append(reports, &copied)
		}
	}
	return reports, nil
}

func (r *fakeReportRepo) ListAll(ctx context.Context, status models.ReportStatus, params *utils.PaginationParams) ([]*models.Report, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reports []*models.Report
	for _, report := range r.reports {
		if status != "" && report.Status != status {
			continue
		}
		copied := *report
		reports = append(reports, &copied)
	}
	return reports, int64(len(reports)), nil
}

func (r *fakeReportRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.reports)), nil
}

func (r *fakeReportRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.reports))
	r.reports = make(map[primitive.ObjectID]*models.Report)
	return deleted, nil
}

type fakeNoticeRepo struct {
	mu      sync.Mutex
	notices map[primitive.ObjectID]*models.AdminNotice
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{notices: make(map[primitive.ObjectID]*models.AdminNotice)}
}

func (r *fakeNoticeRepo) Create(ctx context.Context, notice *models.AdminNotice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notice.ID = primitive.NewObjectID()
	notice.CreatedAt = time.Now()
	copied := *notice
	r.notices[notice.ID] = &copied
	return nil
}

func (r *fakeNoticeRepo) ListByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]*models.AdminNotice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var notices []*models.AdminNotice
	for _, notice := range r.notices {
		if notice.RecipientID == recipientID {
			copied := *notice
			notices = append(notices, &copied)
		}
	}
	return notices, nil
}

func (r *fakeNoticeRepo) MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notice, ok := r.notices[id]
	if !ok || notice.RecipientID != recipientID {
		return false, nil
	}
	notice.Read = true
	return true, nil
}
