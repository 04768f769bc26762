package service

import (
	"context"
	"time"

	"dermassist/internal/domain/entity"
	"dermassist/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type NotificationService interface {
	Notify(ctx context.Context, userID string, kind entity.NotificationType, message string, request *entity.ReviewRequest) error
	List(ctx context.Context, userID string, unreadOnly bool) ([]entity.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

type notificationService struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	now              func() time.Time
}

func NewNotificationService(log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{
		log:              log,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// Notify records a review-lifecycle event for userID.
func (s *notificationService) Notify(ctx context.Context, userID string, kind entity.NotificationType, message string, request *entity.ReviewRequest) error {
	notification := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      kind,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if request != nil {
		notification.ReviewRequestID = request.ID
		notification.PredictionID = request.PredictionID
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.log.Warnf("Failed to create notification: %+v", err)
		return err
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]entity.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, unreadOnly)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) error {
	ok, err := s.notificationRepo.MarkRead(ctx, userID, id)
	if err != nil {
		s.log.Warnf("Failed to mark notification read: %+v", err)
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	updated, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		s.log.Warnf("Failed to mark notifications read: %+v", err)
		return 0, err
	}
	return updated, nil
}
