package main

import (
	"fmt"
	"io"

	"dermassist/internal/delivery/dto"
	"dermassist/internal/domain/entity"
	"dermassist/pkg/result"

	"github.com/spf13/cobra"
)

func reviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Work with dermatologist review requests",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List review requests you take part in",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := dto.ListReviewRequestsQuery{}
			status, _ := cmd.Flags().GetString("status")
			q.Status = entity.ReviewStatus(status)
			q.Limit, _ = cmd.Flags().GetInt("limit")
			q.Offset, _ = cmd.Flags().GetInt("offset")

			viewer, err := app.Auth.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			res := result.From(app.ReviewRequests.List(cmd.Context(), q))
			return show(cmd, res, func(w io.Writer, items []entity.ReviewRequest) {
				if len(items) == 0 {
					fmt.Fprintln(w, "No review requests.")
					return
				}
				for i := range items {
					printReviewRequest(w, viewer, &items[i])
				}
			})
		},
	}
	list.Flags().String("status", "", "pending, reviewed or rejected")
	list.Flags().Int("limit", 0, "Maximum number of requests")
	list.Flags().Int("offset", 0, "Number of requests to skip")

	create := &cobra.Command{
		Use:   "create <prediction-id> <dermatologist-id>",
		Short: "Ask a dermatologist to review a prediction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := result.From(app.ReviewRequests.Create(cmd.Context(), args[0], args[1]))
			return show(cmd, res, func(w io.Writer, r *entity.ReviewRequest) {
				fmt.Fprintln(w, "Review requested.")
				printReviewDetail(w, r)
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one review request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, result.From(app.ReviewRequests.Get(cmd.Context(), args[0])), printReviewDetail)
		},
	}

	submit := &cobra.Command{
		Use:   "submit <id>",
		Short: "Submit your review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comment, _ := cmd.Flags().GetString("comment")
			res := result.From(app.ReviewRequests.Submit(cmd.Context(), args[0], comment))
			return show(cmd, res, func(w io.Writer, r *entity.ReviewRequest) {
				fmt.Fprintln(w, "Review submitted.")
				printReviewDetail(w, r)
			})
		},
	}
	submit.Flags().String("comment", "", "Review comment")

	reject := &cobra.Command{
		Use:   "reject <id>",
		Short: "Decline a review request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")
			res := result.From(app.ReviewRequests.Reject(cmd.Context(), args[0], reason))
			return show(cmd, res, func(w io.Writer, r *entity.ReviewRequest) {
				fmt.Fprintln(w, "Request rejected.")
				printReviewDetail(w, r)
			})
		},
	}
	reject.Flags().String("reason", "", "Optional reason shown to the patient")

	cmd.AddCommand(list, create, get, submit, reject)
	return cmd
}

func dermatologistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dermatologists [query]",
		Short: "Find a dermatologist to review your results",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var q string
			if len(args) == 1 {
				q = args[0]
			}
			res := result.From(app.Dermatologists.Search(cmd.Context(), q))
			return show(cmd, res, func(w io.Writer, items []entity.User) {
				if len(items) == 0 {
					fmt.Fprintln(w, "No dermatologists found.")
					return
				}
				for _, d := range items {
					fmt.Fprintf(w, "%s  %s  %s", d.ID, d.DisplayName(), d.Specialization)
					if d.ClinicName != "" {
						fmt.Fprintf(w, "  (%s)", d.ClinicName)
					}
					fmt.Fprintln(w)
				}
			})
		},
	}
	return cmd
}

func treatmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "treatment [condition]",
		Short: "Show treatment and prevention advice",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				res := result.From(app.Treatments.List(cmd.Context()))
				return show(cmd, res, func(w io.Writer, items []entity.TreatmentSuggestion) {
					for _, t := range items {
						fmt.Fprintln(w, entity.ConditionDisplayName(t.Condition))
					}
				})
			}
			res := result.From(app.Treatments.GetByName(cmd.Context(), args[0]))
			return show(cmd, res, func(w io.Writer, t *entity.TreatmentSuggestion) {
				fmt.Fprintln(w, entity.ConditionDisplayName(t.Condition))
				fmt.Fprintln(w, "Treatments:")
				for _, s := range t.Treatments {
					fmt.Fprintln(w, "  -", s)
				}
				fmt.Fprintln(w, "Prevention:")
				for _, s := range t.Prevention {
					fmt.Fprintln(w, "  -", s)
				}
				for _, r := range t.Resources {
					fmt.Fprintf(w, "%s: %s\n", r.Title, r.URL)
				}
			})
		},
	}
}
