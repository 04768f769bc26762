package entity

import (
	"errors"
	"strings"
	"time"
)

// ReviewStatus represents the status of a review request
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusReviewed ReviewStatus = "reviewed"
	ReviewStatusRejected ReviewStatus = "rejected"
)

var (
	ErrAlreadyProcessed = errors.New("review request has already been processed")
	ErrEmptyComment     = errors.New("review comment is required")
)

// Valid reports whether s is a known status.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusReviewed, ReviewStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s ReviewStatus) IsTerminal() bool {
	return s == ReviewStatusReviewed || s == ReviewStatusRejected
}

// ReviewRequest is a patient's ask for a dermatologist to evaluate one of
// their predictions.
type ReviewRequest struct {
	ID              string       `json:"id"`
	PredictionID    string       `json:"prediction_id"`
	PatientID       string       `json:"patient_id"`
	DermatologistID string       `json:"dermatologist_id"`
	Status          ReviewStatus `json:"status"`
	Comment         string       `json:"comment,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	ReviewedAt      *time.Time   `json:"reviewed_at,omitempty"`

	// Expanded references, present when the backend populates them.
	Prediction    *Prediction `json:"prediction,omitempty"`
	Patient       *User       `json:"patient,omitempty"`
	Dermatologist *User       `json:"dermatologist,omitempty"`
}

// IsPending checks if the request is still awaiting a reviewer action
func (r *ReviewRequest) IsPending() bool {
	return r.Status == ReviewStatusPending
}

// IsReviewed checks if the dermatologist submitted a review
func (r *ReviewRequest) IsReviewed() bool {
	return r.Status == ReviewStatusReviewed
}

// IsRejected checks if the dermatologist rejected the request
func (r *ReviewRequest) IsRejected() bool {
	return r.Status == ReviewStatusRejected
}

// IsTerminal checks if the request can no longer change state
func (r *ReviewRequest) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// CanTransition reports whether moving to the given status is allowed. Only
// pending requests move, and only into a terminal state.
func (r *ReviewRequest) CanTransition(to ReviewStatus) bool {
	return r.Status == ReviewStatusPending && to.IsTerminal()
}

// MarkReviewed moves a pending request to reviewed, recording the comment and
// review time. Terminal requests are left untouched.
func (r *ReviewRequest) MarkReviewed(comment string, at time.Time) error {
	if !r.CanTransition(ReviewStatusReviewed) {
		return ErrAlreadyProcessed
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ErrEmptyComment
	}
	r.Status = ReviewStatusReviewed
	r.Comment = comment
	r.ReviewedAt = &at
	return nil
}

// MarkRejected moves a pending request to rejected with an optional reason.
func (r *ReviewRequest) MarkRejected(reason string, at time.Time) error {
	if !r.CanTransition(ReviewStatusRejected) {
		return ErrAlreadyProcessed
	}
	r.Status = ReviewStatusRejected
	r.RejectionReason = strings.TrimSpace(reason)
	r.ReviewedAt = &at
	return nil
}

// HasReviewComment reports whether the request carries a dermatologist
// comment worth rendering.
func (r *ReviewRequest) HasReviewComment() bool {
	return r != nil && r.IsReviewed() && strings.TrimSpace(r.Comment) != ""
}
