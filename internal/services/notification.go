package services

import (
	"context"

	"github.com/summitraffle/summitraffle/internal/logger"
	"github.com/summitraffle/summitraffle/internal/models"
	"github.com/summitraffle/summitraffle/internal/repository"
	"github.com/summitraffle/summitraffle/pkg/mailer"
)

// NotificationServiceRepository defines the repository methods needed by NotificationService
type NotificationServiceRepository interface {
	repository.NotificationRepository
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// NotificationService owns the append-only per-user message log. The stored
// record is the contract; email delivery is best-effort and never fails the
// caller.
type NotificationService struct {
	log    logger.Logger
	repo   NotificationServiceRepository
	mailer mailer.Mailer
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(log logger.Logger, repo NotificationServiceRepository, m mailer.Mailer) *NotificationService {
	return &NotificationService{log: log, repo: repo, mailer: m}
}

// Notify appends a notification for a user and forwards it by email when the
// user has an address on file. Mail failures are logged, not escalated.
func (s *NotificationService) Notify(ctx context.Context, userID int64, subject, message string) error {
	if _, err := s.repo.CreateNotification(ctx, userID, message); err != nil {
		return err
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		s.log.Warn("Notification stored but user lookup failed, skipping email", "user_id", userID, "error", err)
		return nil
	}
	if user.Email == "" {
		return nil
	}

	if err := s.mailer.Send(ctx, user.Email, subject, message); err != nil {
		s.log.Warn("Notification email delivery failed", "user_id", userID, "error", err)
	}
	return nil
}

// List returns a user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	return s.repo.ListNotifications(ctx, userID)
}
