package entity

import (
	"testing"
	"unicode/utf8"
)

func TestNormalizeConditionName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Seborrheic_Dermatitis", "seborrheic dermatitis"},
		{"seborrheic dermatitis", "seborrheic dermatitis"},
		{"  ACNE ", "acne"},
		{"atopic-dermatitis", "atopic dermatitis"},
		{"Basal__Cell  Carcinoma", "basal cell carcinoma"},
	}
	for _, tt := range tests {
		if got := NormalizeConditionName(tt.in); got != tt.want {
			t.Errorf("NormalizeConditionName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTreatmentSuggestion_MatchesCondition(t *testing.T) {
	ts := &TreatmentSuggestion{Condition: "seborrheic dermatitis"}
	if !ts.MatchesCondition("Seborrheic_Dermatitis") {
		t.Error("expected Seborrheic_Dermatitis to match seborrheic dermatitis")
	}
	if ts.MatchesCondition("Psoriasis") {
		t.Error("expected Psoriasis not to match")
	}
}

func TestConditionDisplayName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"seborrheic_dermatitis", "Seborrheic Dermatitis"},
		{"Acne", "Acne"},
		{"éczema", "Éczema"},
		{"lichen_ñ", "Lichen Ñ"},
		{"", ""},
	}
	for _, tt := range tests {
		got := ConditionDisplayName(tt.in)
		if got != tt.want {
			t.Errorf("ConditionDisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("ConditionDisplayName(%q) is not valid UTF-8", tt.in)
		}
	}
}
