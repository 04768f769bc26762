package repository

import (
	"context"

	"dermassist/internal/domain/entity"
)

type PredictionRepository interface {
	Create(ctx context.Context, prediction *entity.Prediction, image []byte, contentType string) error
	FindByID(ctx context.Context, id string) (*entity.Prediction, error)
	FindByUserID(ctx context.Context, userID string) ([]entity.Prediction, error)
	FindImage(ctx context.Context, id string) ([]byte, string, error)
	Delete(ctx context.Context, id string) error
}
