package entity

import (
	"sort"
	"time"
)

// PredictionResult is the inference output for one image.
type PredictionResult struct {
	PredictedLabel  string             `json:"predicted_label"`
	ConfidenceScore float64            `json:"confidence_score"`
	Probabilities   map[string]float64 `json:"probabilities,omitempty"`
}

// Prediction is one inference result for a submitted image. It is immutable
// once created; the owning patient may delete it.
type Prediction struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Result    PredictionResult `json:"result"`
	ImageURL  string           `json:"image_url"`
	ReportURL string           `json:"report_url,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ConfidencePercent returns the confidence rounded to the nearest whole
// percentage, as shown on list and detail views.
func (p *Prediction) ConfidencePercent() int {
	return int(p.Result.ConfidenceScore*100 + 0.5)
}

// ClassProbability is a single entry of the per-class probability map.
type ClassProbability struct {
	Label       string
	Probability float64
}

// SortedProbabilities returns the per-class probabilities ordered from most to
// least likely, ties broken by label.
func (p *Prediction) SortedProbabilities() []ClassProbability {
	out := make([]ClassProbability, 0, len(p.Result.Probabilities))
	for label, prob := range p.Result.Probabilities {
		out = append(out, ClassProbability{Label: label, Probability: prob})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability > out[j].Probability
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// SortPredictionsNewestFirst orders predictions by creation time, most recent
// first. Equal timestamps keep their relative order.
func SortPredictionsNewestFirst(predictions []Prediction) {
	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].CreatedAt.After(predictions[j].CreatedAt)
	})
}
