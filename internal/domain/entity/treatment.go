package entity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Resource is an external reading link attached to a treatment suggestion.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TreatmentSuggestion is read-only reference text for a condition.
type TreatmentSuggestion struct {
	ID         string     `json:"id,omitempty"`
	Condition  string     `json:"condition"`
	Treatments []string   `json:"treatments"`
	Prevention []string   `json:"prevention"`
	Resources  []Resource `json:"resources,omitempty"`
}

// NormalizeConditionName folds a label into its lookup key: lowercase, with
// underscores, hyphens and repeated whitespace collapsed to single spaces.
func NormalizeConditionName(name string) string {
	name = strings.ToLower(name)
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

// MatchesCondition reports whether the suggestion applies to the given label.
func (t *TreatmentSuggestion) MatchesCondition(label string) bool {
	return NormalizeConditionName(t.Condition) == NormalizeConditionName(label)
}

// ConditionDisplayName turns a model label like "seborrheic_dermatitis" into
// "Seborrheic Dermatitis".
func ConditionDisplayName(label string) string {
	words := strings.Fields(NormalizeConditionName(label))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
