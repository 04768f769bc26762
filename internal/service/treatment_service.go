package service

import (
	"context"

	"dermassist/internal/domain/entity"
	"dermassist/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type TreatmentService interface {
	GetByName(ctx context.Context, name string) (*entity.TreatmentSuggestion, error)
	List(ctx context.Context) ([]entity.TreatmentSuggestion, error)
	Seed(ctx context.Context, suggestions []entity.TreatmentSuggestion) error
}

type treatmentService struct {
	log           *logrus.Logger
	treatmentRepo repository.TreatmentRepository
}

func NewTreatmentService(log *logrus.Logger, treatmentRepo repository.TreatmentRepository) TreatmentService {
	return &treatmentService{log: log, treatmentRepo: treatmentRepo}
}

// GetByName matches the stored condition name exactly, ignoring case. Clients
// handle separator variants themselves.
func (s *treatmentService) GetByName(ctx context.Context, name string) (*entity.TreatmentSuggestion, error) {
	suggestion, err := s.treatmentRepo.FindByName(ctx, name)
	if err != nil {
		s.log.Warnf("Failed to find treatment: %+v", err)
		return nil, err
	}
	if suggestion == nil {
		return nil, ErrTreatmentNotFound
	}
	return suggestion, nil
}

func (s *treatmentService) List(ctx context.Context) ([]entity.TreatmentSuggestion, error) {
	return s.treatmentRepo.List(ctx)
}

func (s *treatmentService) Seed(ctx context.Context, suggestions []entity.TreatmentSuggestion) error {
	for i := range suggestions {
		if err := s.treatmentRepo.Upsert(ctx, &suggestions[i]); err != nil {
			s.log.Warnf("Failed to seed treatment %s: %+v", suggestions[i].Condition, err)
			return err
		}
	}
	s.log.Infof("Seeded %d treatment suggestions", len(suggestions))
	return nil
}

// DefaultTreatments is the reference text the development backend starts
// with. Condition names use spaces, so model labels with underscores only
// match after normalization.
func DefaultTreatments() []entity.TreatmentSuggestion {
	aad := entity.Resource{Title: "American Academy of Dermatology", URL: "https://www.aad.org/public/diseases"}
	return []entity.TreatmentSuggestion{
		{
			ID:        "acne",
			Condition: "acne",
			Treatments: []string{
				"Topical benzoyl peroxide or salicylic acid",
				"Topical retinoids such as adapalene",
				"Oral antibiotics for moderate to severe inflammatory acne",
			},
			Prevention: []string{
				"Wash your face twice daily with a gentle cleanser",
				"Use non-comedogenic skincare and makeup",
				"Avoid picking or squeezing lesions",
			},
			Resources: []entity.Resource{aad, {Title: "DermNet: Acne", URL: "https://dermnetnz.org/topics/acne"}},
		},
		{
			ID:        "eczema",
			Condition: "eczema",
			Treatments: []string{
				"Regular use of fragrance-free emollients",
				"Topical corticosteroids during flares",
				"Topical calcineurin inhibitors for sensitive areas",
			},
			Prevention: []string{
				"Moisturize immediately after bathing",
				"Avoid known irritants and harsh soaps",
				"Wear soft, breathable fabrics",
			},
			Resources: []entity.Resource{aad, {Title: "DermNet: Atopic dermatitis", URL: "https://dermnetnz.org/topics/atopic-dermatitis"}},
		},
		{
			ID:        "psoriasis",
			Condition: "psoriasis",
			Treatments: []string{
				"Topical corticosteroids and vitamin D analogues",
				"Phototherapy",
				"Systemic or biologic therapy for extensive disease",
			},
			Prevention: []string{
				"Keep skin moisturized",
				"Limit alcohol and avoid smoking",
				"Manage stress",
			},
			Resources: []entity.Resource{aad, {Title: "DermNet: Psoriasis", URL: "https://dermnetnz.org/topics/psoriasis"}},
		},
		{
			ID:        "rosacea",
			Condition: "rosacea",
			Treatments: []string{
				"Topical metronidazole, azelaic acid or ivermectin",
				"Oral doxycycline for papulopustular rosacea",
			},
			Prevention: []string{
				"Identify and avoid personal triggers",
				"Use broad-spectrum sunscreen daily",
			},
			Resources: []entity.Resource{aad, {Title: "DermNet: Rosacea", URL: "https://dermnetnz.org/topics/rosacea"}},
		},
		{
			ID:        "seborrheic-dermatitis",
			Condition: "seborrheic dermatitis",
			Treatments: []string{
				"Antifungal shampoos or creams containing ketoconazole",
				"Short courses of mild topical corticosteroids",
			},
			Prevention: []string{
				"Cleanse affected areas regularly",
				"Avoid heavy, oil-based skincare",
			},
			Resources: []entity.Resource{aad, {Title: "DermNet: Seborrhoeic dermatitis", URL: "https://dermnetnz.org/topics/seborrhoeic-dermatitis"}},
		},
		{
			ID:        "melanoma",
			Condition: "melanoma",
			Treatments: []string{
				"Urgent referral to a dermatologist for biopsy",
				"Surgical excision with appropriate margins",
			},
			Prevention: []string{
				"Avoid sunburn and tanning beds",
				"Check your skin monthly for new or changing moles",
			},
			Resources: []entity.Resource{aad, {Title: "DermNet: Melanoma", URL: "https://dermnetnz.org/topics/melanoma"}},
		},
	}
}
