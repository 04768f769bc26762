package usecase

import (
	"context"
	"net/url"

	"dermassist/internal/delivery/dto"
	"dermassist/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

type NotificationUsecase interface {
	List(ctx context.Context, unreadOnly bool) ([]entity.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

type notificationUsecase struct {
	log *logrus.Logger
	api API
}

func NewNotificationUsecase(log *logrus.Logger, api API) NotificationUsecase {
	return &notificationUsecase{log: log, api: api}
}

func (u *notificationUsecase) List(ctx context.Context, unreadOnly bool) ([]entity.Notification, error) {
	var notifications []entity.Notification
	if _, err := u.api.Get(ctx, "/notifications", dto.NotificationListQuery{UnreadOnly: unreadOnly}, &notifications); err != nil {
		u.log.Warnf("Failed to list notifications: %+v", err)
		return nil, err
	}
	return notifications, nil
}

func (u *notificationUsecase) UnreadCount(ctx context.Context) (int, error) {
	var res dto.UnreadCountResponse
	if _, err := u.api.Get(ctx, "/notifications/unread-count", nil, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, id string) error {
	if err := u.api.Patch(ctx, "/notifications/"+url.PathEscape(id)+"/read", nil, nil); err != nil {
		u.log.Warnf("Failed to mark notification %s as read: %+v", id, err)
		return err
	}
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context) error {
	if err := u.api.Patch(ctx, "/notifications/read-all", nil, nil); err != nil {
		u.log.Warnf("Failed to mark notifications as read: %+v", err)
		return err
	}
	return nil
}
