package main

import (
	"context"
	"fmt"
	"io"

	"dermassist/internal/apiclient"
	"dermassist/internal/delivery/dto"
	"dermassist/internal/domain/entity"
	"dermassist/internal/report"

	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a PDF report for a prediction",
	}

	download := &cobra.Command{
		Use:   "download <prediction-id>",
		Short: "Save the report to the downloads folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := reportInput(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return show(cmd, app.Reports.Download(cmd.Context(), in), func(w io.Writer, path string) {
				fmt.Fprintln(w, "Report saved to", path)
			})
		},
	}

	share := &cobra.Command{
		Use:   "share <prediction-id>",
		Short: "Open the report in the system share handler",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := reportInput(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return show(cmd, app.Reports.Share(cmd.Context(), in), func(w io.Writer, path string) {
				fmt.Fprintln(w, "Shared", path)
			})
		},
	}

	cmd.AddCommand(download, share)
	return cmd
}

// reportInput gathers the prediction with its most recent review request and
// the matching treatment. Missing optional pieces fall back to defaults.
func reportInput(ctx context.Context, predictionID string) (report.Input, error) {
	user, err := app.Auth.CurrentUser(ctx)
	if err != nil {
		return report.Input{}, err
	}
	prediction, err := app.Predictions.GetPrediction(ctx, predictionID)
	if err != nil {
		return report.Input{}, err
	}
	in := report.Input{Prediction: prediction}
	if user.IsPatient() {
		in.PatientName = user.DisplayName()
	}

	reviews, err := app.ReviewRequests.List(ctx, dto.ListReviewRequestsQuery{})
	if err != nil {
		app.Log.Warnf("Failed to load review requests for report: %+v", err)
	}
	for i := range reviews {
		if reviews[i].PredictionID != predictionID {
			continue
		}
		r := reviews[i]
		if in.Review == nil || preferReview(&r, in.Review) {
			in.Review = &r
		}
	}
	if in.Review != nil && in.PatientName == "" && in.Review.Patient != nil {
		in.PatientName = in.Review.Patient.DisplayName()
	}

	treatment, err := app.Treatments.GetByName(ctx, prediction.Result.PredictedLabel)
	switch {
	case err == nil:
		in.Treatment = treatment
	case apiclient.KindOf(err) == apiclient.KindNotFound:
	default:
		app.Log.Warnf("Failed to load treatment for report: %+v", err)
	}
	return in, nil
}

// preferReview ranks a reviewed request above anything else, then the newer
// one.
func preferReview(candidate, current *entity.ReviewRequest) bool {
	if candidate.IsReviewed() != current.IsReviewed() {
		return candidate.IsReviewed()
	}
	return candidate.CreatedAt.After(current.CreatedAt)
}
