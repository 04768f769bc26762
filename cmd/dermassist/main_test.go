package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"dermassist/cmd/bootstrap"
	"dermassist/config"
	"dermassist/internal/session"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func TestExecute_CleansUpAfterFailure(t *testing.T) {
	tests := []struct {
		name    string
		runErr  error
		wantErr bool
	}{
		{"success", nil, false},
		{"failure", errors.New("boom"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &cobra.Command{Use: "dermassist", SilenceUsage: true, SilenceErrors: true}
			root.AddCommand(&cobra.Command{
				Use:  "fail",
				RunE: func(cmd *cobra.Command, args []string) error { return tt.runErr },
			})
			root.SetArgs([]string{"fail"})

			cleaned := false
			err := execute(root, func() { cleaned = true })
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !cleaned {
				t.Error("cleanup did not run")
			}
		})
	}
}

func TestNotificationsWatch_PrintsStartingCount(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{
		API:          config.APIConfig{BaseURL: "http://127.0.0.1:0/api"},
		Report:       config.ReportConfig{Platform: config.PlatformDesktop, TempDir: t.TempDir()},
		Notification: config.NotificationConfig{PollInterval: time.Hour},
	}
	app = bootstrap.NewClientWithStore(cfg, log, session.NewMemoryStore())
	t.Cleanup(func() { app = nil })

	cmd := notificationsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"watch"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Without a session the count is zero, which never counts as a change.
	if !strings.Contains(out.String(), "unread: 0") {
		t.Errorf("output = %q, want the starting count", out.String())
	}
}
