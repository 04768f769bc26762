package repository

import (
	"context"
	"sort"
	"sync"

	"dermassist/internal/domain/entity"
	domainRepo "dermassist/internal/domain/repository"
)

type reviewRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]entity.ReviewRequest
}

func NewReviewRequestRepository() domainRepo.ReviewRequestRepository {
	return &reviewRequestRepository{requests: make(map[string]entity.ReviewRequest)}
}

func (r *reviewRequestRepository) CreateIfNoPending(_ context.Context, request *entity.ReviewRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.requests {
		if existing.PredictionID == request.PredictionID &&
			existing.DermatologistID == request.DermatologistID &&
			!existing.IsTerminal() {
			return domainRepo.ErrDuplicateReviewRequest
		}
	}
	r.requests[request.ID] = *request
	return nil
}

func (r *reviewRequestRepository) FindByID(_ context.Context, id string) (*entity.ReviewRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if req, ok := r.requests[id]; ok {
		return &req, nil
	}
	return nil, nil
}

// List returns matching requests newest first, paginated by limit/offset,
// along with the total number of matches.
func (r *reviewRequestRepository) List(_ context.Context, filter domainRepo.ReviewRequestFilter) ([]entity.ReviewRequest, int64, error) {
	r.mu.RLock()
	matched := []entity.ReviewRequest{}
	for _, req := range r.requests {
		if filter.PredictionID != "" && req.PredictionID != filter.PredictionID {
			continue
		}
		if filter.PatientID != "" && req.PatientID != filter.PatientID {
			continue
		}
		if filter.DermatologistID != "" && req.DermatologistID != filter.DermatologistID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		matched = append(matched, req)
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []entity.ReviewRequest{}, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *reviewRequestRepository) Update(_ context.Context, id string, mutate func(*entity.ReviewRequest) error) (*entity.ReviewRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	if err := mutate(&req); err != nil {
		return nil, err
	}
	r.requests[id] = req
	return &req, nil
}

func (r *reviewRequestRepository) DeleteByPredictionID(_ context.Context, predictionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, req := range r.requests {
		if req.PredictionID == predictionID {
			delete(r.requests, id)
		}
	}
	return nil
}
