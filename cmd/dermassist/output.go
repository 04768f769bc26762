package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"dermassist/internal/apiclient"
	"dermassist/internal/domain/entity"
	"dermassist/pkg/result"

	"github.com/spf13/cobra"
)

// show prints a successful result with print and returns the failure
// otherwise, so main reports it once.
func show[T any](cmd *cobra.Command, res result.Result[T], print func(w io.Writer, data T)) error {
	if !res.IsSuccess() {
		return res.Err()
	}
	print(cmd.OutOrStdout(), res.Data())
	return nil
}

// printError writes the user-facing message; validation failures get one
// line per field.
func printError(w io.Writer, err error) {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		fields := make([]string, 0, len(apiErr.Fields))
		for f := range apiErr.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(w, "%s: %s\n", f, apiErr.Fields[f])
		}
		return
	}
	fmt.Fprintln(w, "Error:", err.Error())
}

func printUser(w io.Writer, u *entity.User) {
	fmt.Fprintf(w, "%s (@%s)\n", u.DisplayName(), u.Username)
	fmt.Fprintf(w, "  Role:  %s\n", u.Role)
	fmt.Fprintf(w, "  Email: %s\n", u.Email)
	if u.IsDermatologist() {
		fmt.Fprintf(w, "  Specialization: %s\n", u.Specialization)
		if u.ClinicName != "" {
			fmt.Fprintf(w, "  Clinic: %s\n", u.ClinicName)
		}
		fmt.Fprintf(w, "  Experience: %d years\n", u.YearsOfExperience)
	}
}

func printPrediction(w io.Writer, p *entity.Prediction) {
	fmt.Fprintf(w, "%s  %s  %d%%  %s\n",
		p.ID, entity.ConditionDisplayName(p.Result.PredictedLabel), p.ConfidencePercent(), p.CreatedAt.Local().Format("2006-01-02 15:04"))
}

func printPredictionDetail(w io.Writer, p *entity.Prediction) {
	fmt.Fprintf(w, "Prediction %s\n", p.ID)
	fmt.Fprintf(w, "  Condition:  %s\n", entity.ConditionDisplayName(p.Result.PredictedLabel))
	fmt.Fprintf(w, "  Confidence: %d%%\n", p.ConfidencePercent())
	fmt.Fprintf(w, "  Image:      %s\n", p.ImageURL)
	fmt.Fprintf(w, "  Created:    %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"))
	if probs := p.SortedProbabilities(); len(probs) > 0 {
		fmt.Fprintln(w, "  Probabilities:")
		for _, cp := range probs {
			fmt.Fprintf(w, "    %-24s %5.1f%%\n", entity.ConditionDisplayName(cp.Label), cp.Probability*100)
		}
	}
}

// printReviewRequest shows the counterpart of viewer: the dermatologist for
// patients and the patient for dermatologists.
func printReviewRequest(w io.Writer, viewer *entity.User, r *entity.ReviewRequest) {
	condition := r.PredictionID
	if r.Prediction != nil {
		condition = entity.ConditionDisplayName(r.Prediction.Result.PredictedLabel)
	}
	counterpart := r.DermatologistID
	if r.Dermatologist != nil {
		counterpart = r.Dermatologist.DisplayName()
	}
	if viewer.IsDermatologist() {
		counterpart = r.PatientID
		if r.Patient != nil {
			counterpart = r.Patient.DisplayName()
		}
	}
	fmt.Fprintf(w, "%s  %-9s  %s  %s  %s\n", r.ID, r.Status, condition, counterpart, r.CreatedAt.Local().Format("2006-01-02 15:04"))
}

func printReviewDetail(w io.Writer, r *entity.ReviewRequest) {
	fmt.Fprintf(w, "Review request %s\n", r.ID)
	fmt.Fprintf(w, "  Status:     %s\n", r.Status)
	fmt.Fprintf(w, "  Prediction: %s\n", r.PredictionID)
	if r.Prediction != nil {
		fmt.Fprintf(w, "  Condition:  %s (%d%%)\n", entity.ConditionDisplayName(r.Prediction.Result.PredictedLabel), r.Prediction.ConfidencePercent())
	}
	if r.Patient != nil {
		fmt.Fprintf(w, "  Patient:    %s\n", r.Patient.DisplayName())
	}
	if r.Dermatologist != nil {
		fmt.Fprintf(w, "  Reviewer:   %s\n", r.Dermatologist.DisplayName())
	}
	if r.Comment != "" {
		fmt.Fprintf(w, "  Comment:    %s\n", r.Comment)
	}
	if r.RejectionReason != "" {
		fmt.Fprintf(w, "  Reason:     %s\n", r.RejectionReason)
	}
	if r.ReviewedAt != nil {
		fmt.Fprintf(w, "  Reviewed:   %s\n", r.ReviewedAt.Local().Format("2006-01-02 15:04"))
	}
}
