package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"dermassist/internal/apiclient"
	"dermassist/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

var ErrTreatmentNotFound = &apiclient.Error{
	Kind:       apiclient.KindNotFound,
	StatusCode: http.StatusNotFound,
	Message:    "No treatment information found for this condition.",
}

type TreatmentUsecase interface {
	GetByName(ctx context.Context, name string) (*entity.TreatmentSuggestion, error)
	List(ctx context.Context) ([]entity.TreatmentSuggestion, error)
}

type treatmentUsecase struct {
	log *logrus.Logger
	api API
}

func NewTreatmentUsecase(log *logrus.Logger, api API) TreatmentUsecase {
	return &treatmentUsecase{log: log, api: api}
}

// GetByName looks a condition up by name. Label spellings differ between the
// model and the reference data ("Seborrheic_Dermatitis" vs "seborrheic
// dermatitis"), so the direct lookup is retried with normalized spellings and
// finally matched against the full list before giving up.
func (u *treatmentUsecase) GetByName(ctx context.Context, name string) (*entity.TreatmentSuggestion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTreatmentNotFound
	}

	for _, candidate := range nameCandidates(name) {
		var suggestion entity.TreatmentSuggestion
		_, err := u.api.Get(ctx, "/treatments/"+url.PathEscape(candidate), nil, &suggestion)
		if err == nil {
			return &suggestion, nil
		}
		if !errors.Is(err, apiclient.ErrNotFound) {
			u.log.Warnf("Failed to fetch treatment %q: %+v", candidate, err)
			return nil, err
		}
	}

	all, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].MatchesCondition(name) {
			return &all[i], nil
		}
	}

	u.log.Infof("No treatment found for %q", name)
	return nil, ErrTreatmentNotFound
}

func (u *treatmentUsecase) List(ctx context.Context) ([]entity.TreatmentSuggestion, error) {
	var suggestions []entity.TreatmentSuggestion
	if _, err := u.api.Get(ctx, "/treatments", nil, &suggestions); err != nil {
		u.log.Warnf("Failed to list treatments: %+v", err)
		return nil, err
	}
	return suggestions, nil
}

// nameCandidates returns the distinct spellings tried for a direct lookup.
func nameCandidates(name string) []string {
	normalized := entity.NormalizeConditionName(name)
	candidates := []string{name, normalized, strings.ReplaceAll(normalized, " ", "_")}

	seen := make(map[string]bool, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
