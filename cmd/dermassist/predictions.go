package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dermassist/internal/domain/entity"
	"dermassist/pkg/result"

	"github.com/spf13/cobra"
)

func predictCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predict <image>",
		Short: "Upload a skin photo for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open image: %w", err)
			}
			defer f.Close()

			res := result.From(app.Predictions.UploadImage(cmd.Context(), filepath.Base(args[0]), f))
			return show(cmd, res, printPredictionDetail)
		},
	}
}

func predictionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predictions",
		Short: "Browse your analysis history",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List predictions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			res := result.From(app.Predictions.ListPredictions(cmd.Context()))
			return show(cmd, res, func(w io.Writer, items []entity.Prediction) {
				if len(items) == 0 {
					fmt.Fprintln(w, "No predictions yet.")
					return
				}
				for i := range items {
					printPrediction(w, &items[i])
				}
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one prediction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cmd, result.From(app.Predictions.GetPrediction(cmd.Context(), args[0])), printPredictionDetail)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a prediction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Predictions.DeletePrediction(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Prediction deleted.")
			return nil
		},
	}

	cmd.AddCommand(list, get, del)
	return cmd
}
