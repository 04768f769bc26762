package service

import (
	"context"
	"crypto/sha256"

	"dermassist/internal/domain/entity"
)

// Classifier runs inference on an uploaded image.
type Classifier interface {
	Classify(ctx context.Context, image []byte) (entity.PredictionResult, error)
}

// DefaultLabels are the conditions the development classifier can report.
var DefaultLabels = []string{
	"acne",
	"eczema",
	"psoriasis",
	"rosacea",
	"seborrheic_dermatitis",
	"melanoma",
}

// HashClassifier is a deterministic stand-in for the real model. Each label
// is weighted by one byte of the image's SHA-256 and the weights are
// normalized, so the same image always yields the same result and the
// probabilities sum to 1.
type HashClassifier struct {
	Labels []string
}

func NewHashClassifier() *HashClassifier {
	return &HashClassifier{Labels: DefaultLabels}
}

func (c *HashClassifier) Classify(_ context.Context, image []byte) (entity.PredictionResult, error) {
	sum := sha256.Sum256(image)

	weights := make([]float64, len(c.Labels))
	var total float64
	best := 0
	for i := range c.Labels {
		weights[i] = float64(sum[i%len(sum)]) + 1
		total += weights[i]
		if weights[i] > weights[best] {
			best = i
		}
	}

	probs := make(map[string]float64, len(c.Labels))
	for i, label := range c.Labels {
		probs[label] = weights[i] / total
	}

	return entity.PredictionResult{
		PredictedLabel:  c.Labels[best],
		ConfidenceScore: probs[c.Labels[best]],
		Probabilities:   probs,
	}, nil
}

// StaticClassifier always returns the same result.
type StaticClassifier struct {
	Result entity.PredictionResult
}

func (c StaticClassifier) Classify(context.Context, []byte) (entity.PredictionResult, error) {
	return c.Result, nil
}
