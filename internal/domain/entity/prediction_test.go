package entity

import (
	"testing"
	"time"
)

func TestPrediction_ConfidencePercent(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{0.73, 73},
		{0.736, 74},
		{0.0, 0},
		{1.0, 100},
		{0.004, 0},
	}
	for _, tt := range tests {
		p := &Prediction{Result: PredictionResult{ConfidenceScore: tt.score}}
		if got := p.ConfidencePercent(); got != tt.want {
			t.Errorf("ConfidencePercent(%v) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestSortPredictionsNewestFirst(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	preds := []Prediction{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "mid", CreatedAt: base.Add(time.Hour)},
	}
	SortPredictionsNewestFirst(preds)
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if preds[i].ID != id {
			t.Fatalf("order = %v, want %v", []string{preds[0].ID, preds[1].ID, preds[2].ID}, want)
		}
	}
}

func TestPrediction_SortedProbabilities(t *testing.T) {
	p := &Prediction{Result: PredictionResult{Probabilities: map[string]float64{
		"Eczema": 0.1, "Acne": 0.7, "Rosacea": 0.1, "Psoriasis": 0.1,
	}}}
	got := p.SortedProbabilities()
	if got[0].Label != "Acne" {
		t.Errorf("first = %q, want Acne", got[0].Label)
	}
	if got[1].Label != "Eczema" || got[2].Label != "Psoriasis" || got[3].Label != "Rosacea" {
		t.Errorf("tie order = %v", got)
	}
}
