package entity

import "time"

// NotificationType identifies the review-lifecycle event behind a notification
type NotificationType string

const (
	NotificationReviewRequested NotificationType = "review_requested"
	NotificationReviewSubmitted NotificationType = "review_submitted"
	NotificationReviewRejected  NotificationType = "review_rejected"
)

// Notification is created server-side on review-lifecycle events. Clients
// only ever mark it as read.
type Notification struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Type            NotificationType `json:"type"`
	Message         string           `json:"message"`
	IsRead          bool             `json:"is_read"`
	ReviewRequestID string           `json:"review_request_id,omitempty"`
	PredictionID    string           `json:"prediction_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}
