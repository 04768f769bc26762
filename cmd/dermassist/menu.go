package main

import (
	"fmt"

	"dermassist/internal/navigation"

	"github.com/spf13/cobra"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Show the screens available to the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Session.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			g := navigation.ForUser(user)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Graph: %s\n", g.Name())
			for _, r := range g.Routes() {
				marker := " "
				if r.Tab {
					marker = "*"
				}
				fmt.Fprintf(w, "%s %-20s %s\n", marker, r.Name, r.Title)
			}
			return nil
		},
	}
}
