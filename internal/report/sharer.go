package report

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

const (
	ShareTitle   = "Share Skin Analysis Report"
	ShareMessage = "Here is my skin analysis report."
)

// ErrShareCancelled is returned by a Sharer when the user dismisses the share
// sheet. It is not a failure.
var ErrShareCancelled = errors.New("share cancelled")

// Sharer hands a generated file to the platform share facility.
type Sharer interface {
	Share(ctx context.Context, path, title, message string) error
}

// OpenSharer opens the file with the desktop's default handler, from which
// the user shares it onward.
type OpenSharer struct{}

func (OpenSharer) Share(ctx context.Context, path, _, _ string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() == context.Canceled {
			return ErrShareCancelled
		}
		return fmt.Errorf("open %s: %v: %s", path, err, out)
	}
	return nil
}
