package report

import (
	"fmt"
	"strings"
	"time"

	"dermassist/internal/domain/entity"

	"github.com/google/uuid"
)

const notAvailable = "N/A"

// Confidence tiers and the colors they are rendered in.
const (
	LevelHigh     = "High"
	LevelModerate = "Moderate"
	LevelLow      = "Low"

	colorHigh     = "#2e7d32"
	colorModerate = "#f9a825"
	colorLow      = "#c62828"
)

const (
	NoTreatmentMessage = "No specific treatment recommendations found for this condition. Please consult a dermatologist."
	NotReviewedMessage = "This report has not yet been reviewed by a dermatologist. The analysis was generated automatically and is not a diagnosis."
)

var defaultPrevention = []string{
	"Cleanse your skin daily with a gentle, fragrance-free cleanser.",
	"Apply a broad-spectrum sunscreen with SPF 30+ every day.",
	"Avoid touching your face with unwashed hands.",
	"Consult a dermatologist if symptoms persist or worsen.",
}

var defaultResources = []entity.Resource{
	{Title: "American Academy of Dermatology", URL: "https://www.aad.org"},
	{Title: "DermNet", URL: "https://dermnetnz.org"},
}

// Input is everything a report is generated from. Review and Treatment are
// optional.
type Input struct {
	Prediction  *entity.Prediction
	Review      *entity.ReviewRequest
	Treatment   *entity.TreatmentSuggestion
	PatientName string
}

type Patient struct {
	Name                string
	Age                 string
	Gender              string
	Contact             string
	MedicalRecordNumber string
}

type ProbabilityRow struct {
	Condition string
	Percent   string
}

type Review struct {
	Reviewed   bool
	Comment    string
	Reviewer   string
	ReviewedAt string
	Note       string
	Message    string
}

// Data is the view model rendered into the report document.
type Data struct {
	ReportID        string
	GeneratedAt     string
	Patient         Patient
	Condition       string
	Confidence      string
	ConfidenceLevel string
	ConfidenceColor string
	AnalysisDate    string
	ImageURL        string
	Probabilities   []ProbabilityRow
	Treatments      []string
	Prevention      []string
	Resources       []entity.Resource
	Review          Review
}

// BuildData assembles the view model, filling every missing section with its
// fallback content.
func BuildData(in Input, now time.Time) Data {
	p := in.Prediction
	level, color := ConfidenceLevel(p.Result.ConfidenceScore)

	patientName := strings.TrimSpace(in.PatientName)
	if patientName == "" {
		patientName = notAvailable
	}

	data := Data{
		ReportID:    NewReportID(now),
		GeneratedAt: now.Format("January 2, 2006 15:04"),
		Patient: Patient{
			Name:                patientName,
			Age:                 notAvailable,
			Gender:              notAvailable,
			Contact:             notAvailable,
			MedicalRecordNumber: notAvailable,
		},
		Condition:       entity.ConditionDisplayName(p.Result.PredictedLabel),
		Confidence:      FormatConfidence(p.Result.ConfidenceScore),
		ConfidenceLevel: level,
		ConfidenceColor: color,
		AnalysisDate:    p.CreatedAt.Format("January 2, 2006 15:04"),
		ImageURL:        p.ImageURL,
		Treatments:      []string{NoTreatmentMessage},
		Prevention:      defaultPrevention,
		Resources:       defaultResources,
		Review:          buildReview(in.Review),
	}

	for _, cp := range p.SortedProbabilities() {
		data.Probabilities = append(data.Probabilities, ProbabilityRow{
			Condition: entity.ConditionDisplayName(cp.Label),
			Percent:   FormatConfidence(cp.Probability),
		})
	}

	if t := in.Treatment; t != nil {
		if len(t.Treatments) > 0 {
			data.Treatments = t.Treatments
		}
		if len(t.Prevention) > 0 {
			data.Prevention = t.Prevention
		}
		if len(t.Resources) > 0 {
			data.Resources = t.Resources
		}
	}
	return data
}

func buildReview(r *entity.ReviewRequest) Review {
	if r.HasReviewComment() {
		review := Review{
			Reviewed: true,
			Comment:  strings.TrimSpace(r.Comment),
			Reviewer: notAvailable,
		}
		if r.Dermatologist != nil {
			review.Reviewer = r.Dermatologist.DisplayName()
		}
		if r.ReviewedAt != nil {
			review.ReviewedAt = r.ReviewedAt.Format("January 2, 2006")
		}
		return review
	}

	review := Review{Message: NotReviewedMessage}
	if r != nil && r.IsRejected() && r.RejectionReason != "" {
		review.Note = "Review request declined: " + r.RejectionReason
	}
	return review
}

// FormatConfidence renders a [0,1] score as a percentage with two decimals.
func FormatConfidence(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}

// ConfidenceLevel maps a score onto its tier and color.
func ConfidenceLevel(score float64) (level, color string) {
	switch {
	case score >= 0.80:
		return LevelHigh, colorHigh
	case score >= 0.50:
		return LevelModerate, colorModerate
	default:
		return LevelLow, colorLow
	}
}

// NewReportID returns an identifier of the form RPT-20260102-1A2B3C4D.
func NewReportID(now time.Time) string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "RPT-" + now.Format("20060102") + "-" + strings.ToUpper(id[:8])
}
