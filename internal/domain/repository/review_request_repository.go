package repository

import (
	"context"
	"errors"

	"dermassist/internal/domain/entity"
)

var ErrDuplicateReviewRequest = errors.New("a pending review request already exists for this prediction and dermatologist")

type ReviewRequestFilter struct {
	PredictionID    string
	PatientID       string
	DermatologistID string
	Status          entity.ReviewStatus
	Limit           int
	Offset          int
}

type ReviewRequestRepository interface {
	// CreateIfNoPending stores the request unless a pending request already
	// exists for the same prediction and dermatologist, in which case it
	// returns ErrDuplicateReviewRequest. The check and insert are atomic.
	CreateIfNoPending(ctx context.Context, request *entity.ReviewRequest) error
	FindByID(ctx context.Context, id string) (*entity.ReviewRequest, error)
	List(ctx context.Context, filter ReviewRequestFilter) ([]entity.ReviewRequest, int64, error)
	// Update applies mutate to the stored request under the repository lock
	// and persists it only when mutate returns nil.
	Update(ctx context.Context, id string, mutate func(*entity.ReviewRequest) error) (*entity.ReviewRequest, error)
	DeleteByPredictionID(ctx context.Context, predictionID string) error
}
