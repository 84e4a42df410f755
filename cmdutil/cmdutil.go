// Package cmdutil runs external commands for urlview, most notably the
// user-configured command viewers.
package cmdutil

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout is the default timeout for a command viewer.
const DefaultTimeout = 30 * time.Second

// URLPlaceholder is replaced by the dispatched URL in command arguments.
const URLPlaceholder = "{url}"

// RunCommandWithOutput runs a command and returns its combined output.
// The command inherits environment variables from the parent process.
func RunCommandWithOutput(ctx context.Context, name string, args []string, dir string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("command failed: %w", err)
	}

	return output, nil
}

// RunWithTimeout is RunCommandWithOutput bounded by timeout.
func RunWithTimeout(ctx context.Context, name string, args []string, dir string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return RunCommandWithOutput(ctx, name, args, dir)
}

// ExpandArgs returns a copy of args with every {url} replaced by url.
// When no argument mentions {url}, the URL is appended.
func ExpandArgs(args []string, url string) []string {
	expanded := make([]string, 0, len(args)+1)
	found := false
	for _, arg := range args {
		if strings.Contains(arg, URLPlaceholder) {
			found = true
		}
		expanded = append(expanded, strings.ReplaceAll(arg, URLPlaceholder, url))
	}
	if !found {
		expanded = append(expanded, url)
	}
	return expanded
}
