package service

import (
	"context"
	"strings"
	"time"

	"dermassist/internal/domain/entity"
	"dermassist/internal/domain/repository"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PredictionService interface {
	Predict(ctx context.Context, userID string, image []byte) (*entity.Prediction, error)
	List(ctx context.Context, userID string) ([]entity.Prediction, error)
	Get(ctx context.Context, userID, id string) (*entity.Prediction, error)
	Delete(ctx context.Context, userID, id string) error
	Image(ctx context.Context, id string) ([]byte, string, error)
}

type predictionService struct {
	log            *logrus.Logger
	predictionRepo repository.PredictionRepository
	reviewRepo     repository.ReviewRequestRepository
	classifier     Classifier
	now            func() time.Time
}

func NewPredictionService(
	log *logrus.Logger,
	predictionRepo repository.PredictionRepository,
	reviewRepo repository.ReviewRequestRepository,
	classifier Classifier,
) PredictionService {
	return &predictionService{
		log:            log,
		predictionRepo: predictionRepo,
		reviewRepo:     reviewRepo,
		classifier:     classifier,
		now:            time.Now,
	}
}

func (s *predictionService) Predict(ctx context.Context, userID string, image []byte) (*entity.Prediction, error) {
	mtype := mimetype.Detect(image)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, ErrInvalidImage
	}

	result, err := s.classifier.Classify(ctx, image)
	if err != nil {
		s.log.Warnf("Failed to classify image: %+v", err)
		return nil, err
	}

	id := uuid.New().String()
	prediction := &entity.Prediction{
		ID:        id,
		UserID:    userID,
		Result:    result,
		ImageURL:  "/api/images/" + id,
		CreatedAt: s.now().UTC(),
	}
	if err := s.predictionRepo.Create(ctx, prediction, image, mtype.String()); err != nil {
		s.log.Warnf("Failed to store prediction: %+v", err)
		return nil, err
	}

	s.log.Infof("Prediction created: id=%s, user=%s, label=%s", id, userID, result.PredictedLabel)
	return prediction, nil
}

func (s *predictionService) List(ctx context.Context, userID string) ([]entity.Prediction, error) {
	predictions, err := s.predictionRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Warnf("Failed to list predictions: %+v", err)
		return nil, err
	}
	return predictions, nil
}

// Get returns the prediction to its owner or to a dermatologist it was sent
// to for review.
func (s *predictionService) Get(ctx context.Context, userID, id string) (*entity.Prediction, error) {
	prediction, err := s.predictionRepo.FindByID(ctx, id)
	if err != nil {
		s.log.Warnf("Failed to find prediction: %+v", err)
		return nil, err
	}
	if prediction == nil {
		return nil, ErrPredictionNotFound
	}
	if prediction.UserID == userID {
		return prediction, nil
	}

	_, total, err := s.reviewRepo.List(ctx, repository.ReviewRequestFilter{PredictionID: id, DermatologistID: userID})
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, ErrNotPredictionOwner
	}
	return prediction, nil
}

// Delete removes the prediction together with its review requests.
func (s *predictionService) Delete(ctx context.Context, userID, id string) error {
	prediction, err := s.predictionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if prediction == nil {
		return ErrPredictionNotFound
	}
	if prediction.UserID != userID {
		return ErrNotPredictionOwner
	}

	if err := s.reviewRepo.DeleteByPredictionID(ctx, id); err != nil {
		s.log.Warnf("Failed to delete review requests for prediction %s: %+v", id, err)
		return err
	}
	if err := s.predictionRepo.Delete(ctx, id); err != nil {
		s.log.Warnf("Failed to delete prediction: %+v", err)
		return err
	}

	s.log.Infof("Prediction deleted: id=%s", id)
	return nil
}

func (s *predictionService) Image(ctx context.Context, id string) ([]byte, string, error) {
	data, contentType, err := s.predictionRepo.FindImage(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if data == nil {
		return nil, "", ErrPredictionNotFound
	}
	return data, contentType, nil
}
