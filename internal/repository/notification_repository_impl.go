package repository

import (
	"context"
	"sort"
	"sync"

	"dermassist/internal/domain/entity"
	domainRepo "dermassist/internal/domain/repository"
)

type notificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*entity.Notification
}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{notifications: make(map[string]*entity.Notification)}
}

func (r *notificationRepository) Create(_ context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *notification
	r.notifications[notification.ID] = &stored
	return nil
}

func (r *notificationRepository) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]entity.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.Notification{}
	for _, n := range r.notifications {
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *notificationRepository) CountUnread(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkRead reports false when the notification does not exist or belongs to
// another user.
func (r *notificationRepository) MarkRead(_ context.Context, userID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return false, nil
	}
	n.IsRead = true
	return true, nil
}

func (r *notificationRepository) MarkAllRead(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	updated := 0
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}
