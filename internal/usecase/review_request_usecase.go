package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"dermassist/internal/apiclient"
	"dermassist/internal/delivery/dto"
	"dermassist/internal/domain/entity"
	"dermassist/pkg/validator"

	"github.com/sirupsen/logrus"
)

const duplicateRequestMessage = "You already have a pending review request for this prediction with this dermatologist."

type ReviewRequestUsecase interface {
	List(ctx context.Context, filter dto.ListReviewRequestsQuery) ([]entity.ReviewRequest, error)
	Create(ctx context.Context, predictionID, dermatologistID string) (*entity.ReviewRequest, error)
	Get(ctx context.Context, id string) (*entity.ReviewRequest, error)
	Submit(ctx context.Context, id, comment string) (*entity.ReviewRequest, error)
	Reject(ctx context.Context, id, reason string) (*entity.ReviewRequest, error)
	SubmitRequest(ctx context.Context, req *entity.ReviewRequest, comment string) error
	RejectRequest(ctx context.Context, req *entity.ReviewRequest, reason string) error
}

type reviewRequestUsecase struct {
	log       *logrus.Logger
	api       API
	session   Session
	validator *validator.CustomValidator
}

func NewReviewRequestUsecase(log *logrus.Logger, api API, session Session, validator *validator.CustomValidator) ReviewRequestUsecase {
	return &reviewRequestUsecase{
		log:       log,
		api:       api,
		session:   session,
		validator: validator,
	}
}

// List fetches review requests, optionally filtered by status. Results are
// never cached.
func (u *reviewRequestUsecase) List(ctx context.Context, filter dto.ListReviewRequestsQuery) ([]entity.ReviewRequest, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apiclient.NewValidationError(map[string]string{"Status": "Status must be one of: pending reviewed rejected"})
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, apiclient.NewValidationError(map[string]string{"Limit": "Limit and offset must not be negative"})
	}

	var requests []entity.ReviewRequest
	if _, err := u.api.Get(ctx, "/review-requests", filter, &requests); err != nil {
		u.log.Warnf("Failed to list review requests: %+v", err)
		return nil, err
	}
	return requests, nil
}

// Create asks a dermatologist to review one of the patient's predictions.
// Duplicate detection is left to the backend, which answers 409.
func (u *reviewRequestUsecase) Create(ctx context.Context, predictionID, dermatologistID string) (*entity.ReviewRequest, error) {
	req := &dto.CreateReviewRequest{
		PredictionID:    strings.TrimSpace(predictionID),
		DermatologistID: strings.TrimSpace(dermatologistID),
	}
	if err := validate(u.validator, req); err != nil {
		return nil, err
	}

	var created entity.ReviewRequest
	if err := u.api.Post(ctx, "/review-requests", req, &created); err != nil {
		if errors.Is(err, apiclient.ErrConflict) {
			u.log.Infof("Duplicate review request for prediction %s and dermatologist %s", req.PredictionID, req.DermatologistID)
			return nil, duplicateError(err)
		}
		u.log.Warnf("Failed to create review request: %+v", err)
		return nil, err
	}

	u.log.Infof("Review request created: id=%s, prediction=%s, dermatologist=%s", created.ID, created.PredictionID, created.DermatologistID)
	return &created, nil
}

func (u *reviewRequestUsecase) Get(ctx context.Context, id string) (*entity.ReviewRequest, error) {
	var request entity.ReviewRequest
	if _, err := u.api.Get(ctx, "/review-requests/"+url.PathEscape(id), nil, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// Submit records the dermatologist's review comment, moving the request from
// pending to reviewed.
func (u *reviewRequestUsecase) Submit(ctx context.Context, id, comment string) (*entity.ReviewRequest, error) {
	if err := u.requireDermatologist(ctx); err != nil {
		return nil, err
	}
	body := &dto.SubmitReviewRequest{Comment: strings.TrimSpace(comment)}
	if err := validate(u.validator, body); err != nil {
		return nil, err
	}

	var updated entity.ReviewRequest
	if err := u.api.Post(ctx, "/review-requests/"+url.PathEscape(id)+"/review", body, &updated); err != nil {
		u.log.Warnf("Failed to submit review for %s: %+v", id, err)
		return nil, alreadyProcessedError(err)
	}

	u.log.Infof("Review submitted: id=%s", id)
	return &updated, nil
}

// Reject declines the request with an optional reason.
func (u *reviewRequestUsecase) Reject(ctx context.Context, id, reason string) (*entity.ReviewRequest, error) {
	if err := u.requireDermatologist(ctx); err != nil {
		return nil, err
	}
	body := &dto.RejectReviewRequest{Reason: strings.TrimSpace(reason)}
	if err := validate(u.validator, body); err != nil {
		return nil, err
	}

	var updated entity.ReviewRequest
	if err := u.api.Post(ctx, "/review-requests/"+url.PathEscape(id)+"/reject", body, &updated); err != nil {
		u.log.Warnf("Failed to reject review request %s: %+v", id, err)
		return nil, alreadyProcessedError(err)
	}

	u.log.Infof("Review request rejected: id=%s", id)
	return &updated, nil
}

// SubmitRequest is Submit for a request the caller already holds. A request
// known to be terminal fails with ErrAlreadyProcessed without a network call
// and is left untouched; on success req is replaced by the backend's copy.
func (u *reviewRequestUsecase) SubmitRequest(ctx context.Context, req *entity.ReviewRequest, comment string) error {
	if req.IsTerminal() {
		return alreadyProcessed("")
	}
	updated, err := u.Submit(ctx, req.ID, comment)
	if err != nil {
		return err
	}
	*req = *updated
	return nil
}

// RejectRequest is Reject for a request the caller already holds.
func (u *reviewRequestUsecase) RejectRequest(ctx context.Context, req *entity.ReviewRequest, reason string) error {
	if req.IsTerminal() {
		return alreadyProcessed("")
	}
	updated, err := u.Reject(ctx, req.ID, reason)
	if err != nil {
		return err
	}
	*req = *updated
	return nil
}

func (u *reviewRequestUsecase) requireDermatologist(ctx context.Context) error {
	user, err := u.session.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotAuthenticated
	}
	if !user.IsDermatologist() {
		return ErrNotDermatologist
	}
	return nil
}

func duplicateError(err error) error {
	var apiErr *apiclient.Error
	msg := duplicateRequestMessage
	status := 0
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
		if apiErr.Message != "" && apiErr.Message != apiclient.ErrConflict.Message {
			msg = apiErr.Message
		}
	}
	return &apiclient.Error{Kind: apiclient.KindConflict, StatusCode: status, Message: msg, Err: err}
}

// alreadyProcessedError maps the backend's answer to a second reviewer action
// onto KindAlreadyProcessed: a 409, or a 400 whose message says "already".
func alreadyProcessedError(err error) error {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Kind == apiclient.KindConflict,
		apiErr.Kind == apiclient.KindValidation && strings.Contains(strings.ToLower(apiErr.Message), "already"):
		e := alreadyProcessed(apiErr.Message)
		e.StatusCode = apiErr.StatusCode
		e.Err = err
		return e
	}
	return err
}

func alreadyProcessed(message string) *apiclient.Error {
	if message == "" || message == apiclient.ErrConflict.Message {
		message = apiclient.ErrAlreadyProcessed.Message
	}
	return &apiclient.Error{Kind: apiclient.KindAlreadyProcessed, Message: message, Err: entity.ErrAlreadyProcessed}
}
