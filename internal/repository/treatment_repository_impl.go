package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"dermassist/internal/domain/entity"
	domainRepo "dermassist/internal/domain/repository"
)

type treatmentRepository struct {
	mu         sync.RWMutex
	treatments map[string]entity.TreatmentSuggestion
}

func NewTreatmentRepository() domainRepo.TreatmentRepository {
	return &treatmentRepository{treatments: make(map[string]entity.TreatmentSuggestion)}
}

func (r *treatmentRepository) FindByName(_ context.Context, name string) (*entity.TreatmentSuggestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.treatments[strings.ToLower(strings.TrimSpace(name))]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *treatmentRepository) List(_ context.Context) ([]entity.TreatmentSuggestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.TreatmentSuggestion, 0, len(r.treatments))
	for _, t := range r.treatments {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Condition < out[j].Condition })
	return out, nil
}

func (r *treatmentRepository) Upsert(_ context.Context, suggestion *entity.TreatmentSuggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.treatments[strings.ToLower(strings.TrimSpace(suggestion.Condition))] = *suggestion
	return nil
}
