package main

import (
	"os"

	"dermassist/cmd/bootstrap"

	"github.com/spf13/cobra"
)

// app is built once the root command's flags are parsed.
var app *bootstrap.Client

func main() {
	rootCmd := newRootCmd()
	if err := execute(rootCmd, closeApp); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// execute runs the command tree and then cleanup, whether or not the command
// failed. cobra skips PersistentPostRun after an error.
func execute(rootCmd *cobra.Command, cleanup func()) error {
	defer cleanup()
	return rootCmd.Execute()
}

func closeApp() {
	if app != nil {
		app.Close()
	}
}

func newRootCmd() *cobra.Command {
	var apiURL string

	rootCmd := &cobra.Command{
		Use:           "dermassist",
		Short:         "Skin analysis client for patients and dermatologists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := bootstrap.NewClient(bootstrap.WithAPIBaseURL(apiURL))
			if err != nil {
				return err
			}
			app = c
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Backend base URL (overrides API_BASE_URL)")

	rootCmd.AddCommand(signupCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(checkUsernameCmd())
	rootCmd.AddCommand(passwordResetCmd())
	rootCmd.AddCommand(predictCmd())
	rootCmd.AddCommand(predictionsCmd())
	rootCmd.AddCommand(reviewsCmd())
	rootCmd.AddCommand(dermatologistsCmd())
	rootCmd.AddCommand(treatmentCmd())
	rootCmd.AddCommand(notificationsCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(menuCmd())

	return rootCmd
}
