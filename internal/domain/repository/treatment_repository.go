package repository

import (
	"context"

	"dermassist/internal/domain/entity"
)

type TreatmentRepository interface {
	// FindByName matches the stored condition name case-insensitively but
	// otherwise exactly.
	FindByName(ctx context.Context, name string) (*entity.TreatmentSuggestion, error)
	List(ctx context.Context) ([]entity.TreatmentSuggestion, error)
	Upsert(ctx context.Context, suggestion *entity.TreatmentSuggestion) error
}
