package dto

import "dermassist/internal/domain/entity"

// Request DTOs

type CreateReviewRequest struct {
	PredictionID    string `json:"prediction_id" validate:"required"`
	DermatologistID string `json:"dermatologist_id" validate:"required"`
}

type SubmitReviewRequest struct {
	Comment string `json:"comment" validate:"required,notblank,max=5000"`
}

type RejectReviewRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=1000"`
}

// ListReviewRequestsQuery is encoded into the query string by the client and
// decoded back by the reference backend.
type ListReviewRequestsQuery struct {
	Status entity.ReviewStatus `url:"status,omitempty" schema:"status"`
	Limit  int                 `url:"limit,omitempty" schema:"limit"`
	Offset int                 `url:"offset,omitempty" schema:"offset"`
}

type DermatologistSearchQuery struct {
	Search string `url:"search,omitempty" schema:"search"`
}
