package services

import (
	"context"
	"strings"
	"time"

	"cityride/internal/apperrors"
	"cityride/internal/models"
	"cityride/internal/repositories/interfaces"
	"cityride/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ChatService interface {
	Send(ctx context.Context, tripID, senderID primitive.ObjectID, text string) (*models.ChatMessage, error)

	// List serves the poll loop: clients re-fetch on a fixed interval and
	// replace their local copy, so re-delivering messages is harmless.
	List(ctx context.Context, tripID, requesterID primitive.ObjectID, role models.UserRole, since *time.Time) ([]*models.ChatMessage, error)
}

type chatService struct {
	chatRepo interfaces.ChatRepository
	tripRepo interfaces.TripRepository
	userRepo interfaces.UserRepository
	logger   *logger.Logger
}

func NewChatService(chatRepo interfaces.ChatRepository, tripRepo interfaces.TripRepository, userRepo interfaces.UserRepository, log *logger.Logger) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		tripRepo: tripRepo,
		userRepo: userRepo,
		logger:   log.WithField("service", "chat"),
	}
}

func (s *chatService) Send(ctx context.Context, tripID, senderID primitive.ObjectID, text string) (*models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validation("message text is required")
	}
	if len([]rune(text)) > models.MaxChatMessageLength {
		return nil, apperrors.Validation("message exceeds %d characters", models.MaxChatMessageLength)
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.IsParticipant(senderID) {
		return nil, apperrors.Permission("only trip participants can chat")
	}
	if !trip.IsActive() {
		return nil, apperrors.State("chat is only open while the trip is accepted or in progress")
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		TripID:     tripID,
		SenderID:   senderID,
		SenderName: sender.FullName(),
		SenderRole: sender.Role,
		Text:       text,
	}

	if err := s.chatRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *chatService) List(ctx context.Context, tripID, requesterID primitive.ObjectID, role models.UserRole, since *time.Time) ([]*models.ChatMessage, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && !trip.IsParticipant(requesterID) {
		return nil, apperrors.Permission("only trip participants can read the chat")
	}

	return s.chatRepo.ListByTrip(ctx, tripID, since)
}
