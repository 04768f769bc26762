package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dermassist/internal/converter"
	"dermassist/internal/delivery/dto"
	"dermassist/internal/domain/entity"
	"dermassist/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ReviewService interface {
	Create(ctx context.Context, patientID string, req *dto.CreateReviewRequest) (*entity.ReviewRequest, error)
	List(ctx context.Context, user *entity.User, query *dto.ListReviewRequestsQuery) ([]entity.ReviewRequest, int64, error)
	Get(ctx context.Context, userID, id string) (*entity.ReviewRequest, error)
	Submit(ctx context.Context, dermatologistID, id, comment string) (*entity.ReviewRequest, error)
	Reject(ctx context.Context, dermatologistID, id, reason string) (*entity.ReviewRequest, error)
}

type reviewService struct {
	log                 *logrus.Logger
	reviewRepo          repository.ReviewRequestRepository
	predictionRepo      repository.PredictionRepository
	userRepo            repository.UserRepository
	notificationService NotificationService
	now                 func() time.Time
}

func NewReviewService(
	log *logrus.Logger,
	reviewRepo repository.ReviewRequestRepository,
	predictionRepo repository.PredictionRepository,
	userRepo repository.UserRepository,
	notificationService NotificationService,
) ReviewService {
	return &reviewService{
		log:                 log,
		reviewRepo:          reviewRepo,
		predictionRepo:      predictionRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		now:                 time.Now,
	}
}

func (s *reviewService) Create(ctx context.Context, patientID string, req *dto.CreateReviewRequest) (*entity.ReviewRequest, error) {
	prediction, err := s.predictionRepo.FindByID(ctx, req.PredictionID)
	if err != nil {
		s.log.Warnf("Failed to find prediction: %+v", err)
		return nil, err
	}
	if prediction == nil {
		return nil, ErrPredictionNotFound
	}
	if prediction.UserID != patientID {
		return nil, ErrNotPredictionOwner
	}

	dermatologist, err := s.userRepo.FindByID(ctx, req.DermatologistID)
	if err != nil {
		s.log.Warnf("Failed to find dermatologist: %+v", err)
		return nil, err
	}
	if dermatologist == nil {
		return nil, ErrDermatologistNotFound
	}
	if !dermatologist.IsDermatologist() {
		return nil, ErrNotADermatologist
	}

	request := &entity.ReviewRequest{
		ID:              uuid.New().String(),
		PredictionID:    prediction.ID,
		PatientID:       patientID,
		DermatologistID: dermatologist.ID,
		Status:          entity.ReviewStatusPending,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.reviewRepo.CreateIfNoPending(ctx, request); err != nil {
		if err == repository.ErrDuplicateReviewRequest {
			return nil, ErrDuplicateReviewRequest
		}
		s.log.Warnf("Failed to create review request: %+v", err)
		return nil, err
	}

	patientName := "A patient"
	if patient, err := s.userRepo.FindByID(ctx, patientID); err == nil && patient != nil {
		patientName = patient.DisplayName()
	}
	s.notify(ctx, dermatologist.ID, entity.NotificationReviewRequested,
		fmt.Sprintf("%s requested a review of a %s analysis.", patientName, entity.ConditionDisplayName(prediction.Result.PredictedLabel)),
		request)

	s.log.Infof("Review request created: id=%s, prediction=%s, dermatologist=%s", request.ID, request.PredictionID, request.DermatologistID)
	return s.expand(ctx, request), nil
}

// List shows patients the requests they made and dermatologists the
// requests assigned to them.
func (s *reviewService) List(ctx context.Context, user *entity.User, query *dto.ListReviewRequestsQuery) ([]entity.ReviewRequest, int64, error) {
	filter := repository.ReviewRequestFilter{
		Status: query.Status,
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	if user.IsDermatologist() {
		filter.DermatologistID = user.ID
	} else {
		filter.PatientID = user.ID
	}

	requests, total, err := s.reviewRepo.List(ctx, filter)
	if err != nil {
		s.log.Warnf("Failed to list review requests: %+v", err)
		return nil, 0, err
	}
	for i := range requests {
		requests[i] = *s.expand(ctx, &requests[i])
	}
	return requests, total, nil
}

func (s *reviewService) Get(ctx context.Context, userID, id string) (*entity.ReviewRequest, error) {
	request, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		s.log.Warnf("Failed to find review request: %+v", err)
		return nil, err
	}
	if request == nil {
		return nil, ErrReviewRequestNotFound
	}
	if request.PatientID != userID && request.DermatologistID != userID {
		return nil, ErrNotParticipant
	}
	return s.expand(ctx, request), nil
}

func (s *reviewService) Submit(ctx context.Context, dermatologistID, id, comment string) (*entity.ReviewRequest, error) {
	request, err := s.transition(ctx, dermatologistID, id, func(r *entity.ReviewRequest) error {
		return r.MarkReviewed(comment, s.now().UTC())
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, request.PatientID, entity.NotificationReviewSubmitted,
		fmt.Sprintf("%s reviewed your skin analysis.", s.reviewerName(ctx, dermatologistID)),
		request)

	s.log.Infof("Review submitted: id=%s, dermatologist=%s", id, dermatologistID)
	return s.expand(ctx, request), nil
}

func (s *reviewService) Reject(ctx context.Context, dermatologistID, id, reason string) (*entity.ReviewRequest, error) {
	request, err := s.transition(ctx, dermatologistID, id, func(r *entity.ReviewRequest) error {
		return r.MarkRejected(reason, s.now().UTC())
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("%s declined your review request.", s.reviewerName(ctx, dermatologistID))
	if request.RejectionReason != "" {
		message += " Reason: " + request.RejectionReason
	}
	s.notify(ctx, request.PatientID, entity.NotificationReviewRejected, message, request)

	s.log.Infof("Review request rejected: id=%s, dermatologist=%s", id, dermatologistID)
	return s.expand(ctx, request), nil
}

// transition applies a reviewer action atomically. Only the assigned
// dermatologist may act, and only while the request is pending.
func (s *reviewService) transition(ctx context.Context, dermatologistID, id string, apply func(*entity.ReviewRequest) error) (*entity.ReviewRequest, error) {
	updated, err := s.reviewRepo.Update(ctx, id, func(r *entity.ReviewRequest) error {
		if r.DermatologistID != dermatologistID {
			return ErrNotAssigned
		}
		return apply(r)
	})
	switch err {
	case nil:
	case entity.ErrAlreadyProcessed:
		return nil, ErrReviewAlreadyProcessed
	case entity.ErrEmptyComment:
		return nil, ErrEmptyReviewComment
	case ErrNotAssigned:
		return nil, ErrNotAssigned
	default:
		s.log.Warnf("Failed to update review request: %+v", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrReviewRequestNotFound
	}
	return updated, nil
}

// expand fills in the prediction and both participants.
func (s *reviewService) expand(ctx context.Context, request *entity.ReviewRequest) *entity.ReviewRequest {
	if p, err := s.predictionRepo.FindByID(ctx, request.PredictionID); err == nil && p != nil {
		request.Prediction = p
	}
	if u, err := s.userRepo.FindByID(ctx, request.PatientID); err == nil && u != nil {
		request.Patient = converter.RecordToSummary(u)
	}
	if u, err := s.userRepo.FindByID(ctx, request.DermatologistID); err == nil && u != nil {
		request.Dermatologist = converter.RecordToSummary(u)
	}
	return request
}

func (s *reviewService) reviewerName(ctx context.Context, dermatologistID string) string {
	u, err := s.userRepo.FindByID(ctx, dermatologistID)
	if err != nil || u == nil {
		return "Your dermatologist"
	}
	name := u.DisplayName()
	if !strings.HasPrefix(name, "Dr.") {
		name = "Dr. " + name
	}
	return name
}

// notify records the event; a failed notification does not undo the action.
func (s *reviewService) notify(ctx context.Context, userID string, kind entity.NotificationType, message string, request *entity.ReviewRequest) {
	if err := s.notificationService.Notify(ctx, userID, kind, message, request); err != nil {
		s.log.Warnf("Failed to notify user %s of %s: %+v", userID, kind, err)
	}
}
