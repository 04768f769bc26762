package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"dermassist/internal/delivery/dto"
	"dermassist/internal/service"
	"dermassist/pkg/response"
	"dermassist/pkg/validator"

	"github.com/gorilla/mux"
)

type ReviewRequestHandler struct {
	reviewService service.ReviewService
	validator     *validator.CustomValidator
}

func NewReviewRequestHandler(reviewService service.ReviewService, validator *validator.CustomValidator) *ReviewRequestHandler {
	return &ReviewRequestHandler{
		reviewService: reviewService,
		validator:     validator,
	}
}

func (h *ReviewRequestHandler) GetReviewRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var query dto.ListReviewRequestsQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid query parameters", nil)
		return
	}
	if query.Status != "" && !query.Status.Valid() {
		response.ValidationError(w, map[string]string{"Status": "Status must be one of: pending reviewed rejected"})
		return
	}
	if query.Limit < 0 || query.Offset < 0 {
		response.ValidationError(w, map[string]string{"Limit": "Limit and offset must not be negative"})
		return
	}

	requests, total, err := h.reviewService.List(r.Context(), caller, &query)
	if err != nil {
		response.InternalServerError(w, "Failed to get review requests")
		return
	}
	for i := range requests {
		withImageURL(r, requests[i].Prediction)
	}

	response.SuccessWithMeta(w, http.StatusOK, "Review requests retrieved successfully", requests, &response.Meta{
		Limit:  query.Limit,
		Offset: query.Offset,
		Total:  total,
	})
}

func (h *ReviewRequestHandler) CreateReviewRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.reviewService.Create(r.Context(), caller.ID, &req)
	if err != nil {
		switch err {
		case service.ErrPredictionNotFound:
			response.NotFound(w, "Prediction not found")
		case service.ErrNotPredictionOwner:
			response.Forbidden(w, "You can only request reviews of your own predictions")
		case service.ErrDermatologistNotFound:
			response.NotFound(w, "Dermatologist not found")
		case service.ErrNotADermatologist:
			response.Error(w, http.StatusBadRequest, "Selected user is not a dermatologist", nil)
		case service.ErrDuplicateReviewRequest:
			response.Error(w, http.StatusConflict, "A pending review request already exists for this prediction and dermatologist", nil)
		default:
			response.InternalServerError(w, "Failed to create review request")
		}
		return
	}

	withImageURL(r, request.Prediction)
	response.Success(w, http.StatusCreated, "Review request created successfully", request)
}

func (h *ReviewRequestHandler) GetReviewRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	request, err := h.reviewService.Get(r.Context(), caller.ID, mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case service.ErrReviewRequestNotFound:
			response.NotFound(w, "Review request not found")
		case service.ErrNotParticipant:
			response.Forbidden(w, "You don't have access to this review request")
		default:
			response.InternalServerError(w, "Failed to get review request")
		}
		return
	}

	withImageURL(r, request.Prediction)
	response.Success(w, http.StatusOK, "Review request retrieved successfully", request)
}

func (h *ReviewRequestHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.reviewService.Submit(r.Context(), caller.ID, mux.Vars(r)["id"], req.Comment)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to submit review")
		return
	}

	withImageURL(r, request.Prediction)
	response.Success(w, http.StatusOK, "Review submitted successfully", request)
}

func (h *ReviewRequestHandler) RejectReviewRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	// The reason is optional, so an empty body is accepted.
	var req dto.RejectReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.reviewService.Reject(r.Context(), caller.ID, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		h.writeTransitionError(w, err, "Failed to reject review request")
		return
	}

	withImageURL(r, request.Prediction)
	response.Success(w, http.StatusOK, "Review request rejected", request)
}

func (h *ReviewRequestHandler) writeTransitionError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case service.ErrReviewRequestNotFound:
		response.NotFound(w, "Review request not found")
	case service.ErrNotAssigned:
		response.Forbidden(w, "This review request is not assigned to you")
	case service.ErrReviewAlreadyProcessed:
		response.Error(w, http.StatusConflict, "Review request already processed", nil)
	case service.ErrEmptyReviewComment:
		response.ValidationError(w, map[string]string{"Comment": "Comment is required"})
	default:
		response.InternalServerError(w, fallback)
	}
}
