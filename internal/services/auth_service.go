package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"cityride/internal/apperrors"
	"cityride/internal/models"
	"cityride/internal/repositories/interfaces"
	"cityride/internal/utils"
	"cityride/pkg/logger"
	"cityride/pkg/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Authentication
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)

	// Profile
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *UpdateProfileRequest) (*models.User, error)
	UploadPhoto(ctx context.Context, userID primitive.ObjectID, filename, contentType string, size int64, reader io.Reader) (string, error)

	// Driver self-service
	SetDriverStatus(ctx context.Context, driverID primitive.ObjectID, status models.DriverStatus) error
	UpdateLocation(ctx context.Context, driverID primitive.ObjectID, latitude, longitude float64) error

	// EnsureAdmin provisions the bootstrap admin account if it is missing.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	userRepo  interfaces.UserRepository
	storage   storage.Storage
	jwtSecret string
	logger    *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, store storage.Storage, jwtSecret string, log *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		storage:   store,
		jwtSecret: jwtSecret,
		logger:    log.WithField("service", "auth"),
	}
}

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role" validate:"required,oneof=passenger driver"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName  string `json:"last_name" validate:"omitempty,min=2,max=50"`
}

type AuthResponse struct {
	User   *models.User     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to hash password")
	}

	user := &models.User{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Password:  string(hash),
		Role:      models.UserRole(request.Role),
		IsActive:  true,
		Rating:    utils.DefaultRating,
	}
	if user.IsDriver() {
		user.DriverStatus = models.DriverStatusOffline
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": user.ID.Hex(),
		"role":    user.Role,
	}).Info("user registered")

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to issue tokens")
	}

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		return nil, apperrors.Validation("invalid email or password")
	}

	if !user.IsActive {
		return nil, apperrors.Permission("account is deactivated")
	}

	now := time.Now()
	if err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{"last_login_at": now}); err != nil {
		s.logger.WithError(err).Warn("failed to record last login")
	}
	user.LastLoginAt = &now

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to issue tokens")
	}

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, apperrors.Permission("invalid refresh token")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperrors.Permission("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.Permission("account is deactivated")
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to issue tokens")
	}

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if request.FirstName != "" {
		updates["first_name"] = request.FirstName
	}
	if request.LastName != "" {
		updates["last_name"] = request.LastName
	}
	if len(updates) == 0 {
		return nil, apperrors.Validation("nothing to update")
	}

	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UploadPhoto(ctx context.Context, userID primitive.ObjectID, filename, contentType string, size int64, reader io.Reader) (string, error) {
	if size > utils.MaxImageSize {
		return "", apperrors.Validation("photo exceeds the %d byte limit", utils.MaxImageSize)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("users/%s/photo%s", userID.Hex(), path.Ext(filename))
	response, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      reader,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		return "", apperrors.Internal(err, "failed to store photo")
	}

	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"photo_url": response.URL}); err != nil {
		return "", err
	}

	// A new extension writes a new key; clean up the blob it replaced.
	if oldExt := path.Ext(user.PhotoURL); user.PhotoURL != "" && oldExt != path.Ext(filename) {
		oldKey := fmt.Sprintf("users/%s/photo%s", userID.Hex(), oldExt)
		if err := s.storage.Delete(ctx, oldKey); err != nil {
			s.logger.WithError(err).WithField("key", oldKey).Warn("failed to delete replaced photo")
		}
	}

	return response.URL, nil
}

// SetDriverStatus applies a driver-requested status change. Drivers may only
// ask for online or offline; busy belongs to the trip lifecycle. Every change
// goes through the transition table, client input is never trusted.
func (s *authService) SetDriverStatus(ctx context.Context, driverID primitive.ObjectID, status models.DriverStatus) error {
	if status != models.DriverStatusOnline && status != models.DriverStatusOffline {
		return apperrors.Validation("driver status must be online or offline")
	}

	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	if !driver.IsDriver() {
		return apperrors.Permission("only drivers have a driver status")
	}

	if !models.CanTransitionDriverStatus(driver.DriverStatus, status) {
		return apperrors.State("cannot go %s while %s", status, driver.DriverStatus)
	}

	return s.userRepo.SetDriverStatus(ctx, driverID, status)
}

func (s *authService) UpdateLocation(ctx context.Context, driverID primitive.ObjectID, latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return apperrors.Validation("invalid coordinates")
	}

	driver, err := s.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	if !driver.IsDriver() {
		return apperrors.Permission("only drivers report a location")
	}

	return s.userRepo.UpdateLocation(ctx, driverID, &models.DriverLocation{
		Latitude:  latitude,
		Longitude: longitude,
	})
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !apperrors.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal(err, "failed to hash admin password")
	}

	admin := &models.User{
		FirstName: "System",
		LastName:  "Admin",
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		IsActive:  true,
		Rating:    utils.DefaultRating,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.WithField("email", email).Info("bootstrap admin created")
	return nil
}
