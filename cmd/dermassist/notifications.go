package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dermassist/internal/domain/entity"
	"dermassist/pkg/result"

	"github.com/spf13/cobra"
)

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Review-request notifications",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			unread, _ := cmd.Flags().GetBool("unread")
			res := result.From(app.Notifications.List(cmd.Context(), unread))
			return show(cmd, res, func(w io.Writer, items []entity.Notification) {
				if len(items) == 0 {
					fmt.Fprintln(w, "No notifications.")
					return
				}
				for _, n := range items {
					mark := " "
					if !n.IsRead {
						mark = "*"
					}
					fmt.Fprintf(w, "%s %s  %s  %s\n", mark, n.ID, n.CreatedAt.Local().Format("2006-01-02 15:04"), n.Message)
				}
			})
		},
	}
	list.Flags().Bool("unread", false, "Only unread notifications")

	read := &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Notifications.MarkRead(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Marked as read.")
			return nil
		},
	}

	readAll := &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Notifications.MarkAllRead(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All notifications marked as read.")
			return nil
		},
	}

	count := &cobra.Command{
		Use:   "count",
		Short: "Show the unread count",
		RunE: func(cmd *cobra.Command, args []string) error {
			res := result.From(app.Notifications.UnreadCount(cmd.Context()))
			return show(cmd, res, func(w io.Writer, n int) {
				fmt.Fprintln(w, n)
			})
		},
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Print the unread count whenever it changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			printCount := func(n int) {
				fmt.Fprintf(w, "%s  unread: %d\n", time.Now().Format("15:04:05"), n)
			}

			// Set only reports changes, so show the starting value once.
			app.Poller.Refresh(cmd.Context())
			printCount(app.UnreadCount.Count())

			unsubscribe := app.UnreadCount.Subscribe(printCount)
			defer unsubscribe()

			app.Poller.Start()
			defer app.Poller.Stop(5 * time.Second)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case <-quit:
			case <-cmd.Context().Done():
			}
			return nil
		},
	}

	cmd.AddCommand(list, read, readAll, count, watch)
	return cmd
}
