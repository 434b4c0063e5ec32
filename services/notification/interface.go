package notification

import (
	"context"
	"errors"
	"fmt"

	notificationRepo "bookify/database/repository/notification"
	"bookify/fault"
	"bookify/models"
)

// NotificationService persists in-app notifications for customers and
// providers. Delivery is best-effort; a failed notification is logged by the
// caller and never aborts the booking operation that produced it.
type NotificationService interface {
	Create(ctx context.Context, recipientID, title, message, notificationType string, data map[string]any) error
	ListForRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, recipientID string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository) (*DefaultNotificationService, error) {
	if repo == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{Repo: repo}, nil
}

func (s *DefaultNotificationService) Create(ctx context.Context, recipientID, title, message, notificationType string, data map[string]any) error {
	n := &models.Notification{
		RecipientID: recipientID,
		Type:        notificationType,
		Title:       title,
		Message:     message,
		Data:        data,
		Read:        false,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification for %s: %w", recipientID, err)
	}
	return nil
}

func (s *DefaultNotificationService) ListForRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]models.Notification, error) {
	return s.Repo.GetByRecipient(ctx, recipientID, unreadOnly)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	if err := s.Repo.MarkRead(ctx, notificationID, recipientID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			return fault.NotFound("notification not found")
		}
		return err
	}
	return nil
}
