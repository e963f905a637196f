package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
)

// NotificationService defines the interface for notification operations.
// Notify is best effort: a failed insert is logged and swallowed so the
// triggering operation still succeeds.
type NotificationService interface {
	Notify(ctx context.Context, userID int64, kind models.NotificationType, payload map[string]any)
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
}

type notificationStore interface {
	Create(ctx context.Context, notification *models.Notification) (int64, error)
	ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo notificationStore
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo notificationStore, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// Notify records a notification for a user. Errors are logged, never returned.
func (s *notificationServiceImpl) Notify(ctx context.Context, userID int64, kind models.NotificationType, payload map[string]any) {
	_, err := s.notificationRepo.Create(ctx, &models.Notification{
		UserID:  userID,
		Type:    kind,
		Payload: payload,
	})
	if err != nil {
		s.logger.Warn().Err(err).
			Int64("userId", userID).
			Str("type", string(kind)).
			Msg("Failed to record notification")
	}
}

// ListNotifications retrieves a user's notifications
func (s *notificationServiceImpl) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NotificationResponse{
			ID:        n.ID,
			Type:      string(n.Type),
			Payload:   n.Payload,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return responses, nil
}

// MarkRead marks one notification as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}
