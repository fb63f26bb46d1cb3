package utils

import "time"

// Application Constants
const (
	AppName    = "CityRide"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8

	// Rating
	MinStars       = 1
	MaxStars       = 5
	DefaultRating  = 5.0
	LowRatingBelow = 5

	// Chat
	ChatPollInterval = 5 * time.Second

	// File upload
	MaxImageSize = 5 * 1024 * 1024 // 5MB

	// Response statuses
	StatusSuccess = "success"
	StatusError   = "error"

	// Generic error messages
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized"
	ErrForbidden        = "Forbidden"
)
