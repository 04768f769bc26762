package repository

import (
	"context"
	"sync"

	"dermassist/internal/domain/entity"
	domainRepo "dermassist/internal/domain/repository"
)

type storedImage struct {
	data        []byte
	contentType string
}

type predictionRepository struct {
	mu          sync.RWMutex
	predictions map[string]entity.Prediction
	images      map[string]storedImage
}

func NewPredictionRepository() domainRepo.PredictionRepository {
	return &predictionRepository{
		predictions: make(map[string]entity.Prediction),
		images:      make(map[string]storedImage),
	}
}

func (r *predictionRepository) Create(_ context.Context, prediction *entity.Prediction, image []byte, contentType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predictions[prediction.ID] = *prediction
	r.images[prediction.ID] = storedImage{data: image, contentType: contentType}
	return nil
}

func (r *predictionRepository) FindByID(_ context.Context, id string) (*entity.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.predictions[id]; ok {
		return &p, nil
	}
	return nil, nil
}

// FindByUserID returns the user's predictions ordered by created_at DESC.
func (r *predictionRepository) FindByUserID(_ context.Context, userID string) ([]entity.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.Prediction{}
	for _, p := range r.predictions {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	entity.SortPredictionsNewestFirst(out)
	return out, nil
}

func (r *predictionRepository) FindImage(_ context.Context, id string) ([]byte, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.images[id]
	if !ok {
		return nil, "", nil
	}
	return img.data, img.contentType, nil
}

func (r *predictionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.predictions, id)
	delete(r.images, id)
	return nil
}
