package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jongio/urlview/viewer"
)

// ErrEmptyCommand is returned when a command viewer has no command.
var ErrEmptyCommand = errors.New("command viewer has no command")

// CommandViewer opens URLs by running an external program, e.g.
// `code --open-url {url}` or `firefox --new-tab {url}`.
type CommandViewer struct {
	Name     string
	Priority int
	Command  string
	Args     []string
	Timeout  time.Duration
}

// Entry returns a registration whose loader resolves the command on PATH.
// A missing executable fails the load, which aborts the dispatch.
func (c CommandViewer) Entry() viewer.Entry {
	return viewer.Entry{
		Name: c.Name,
		Load: c.load,
	}
}

func (c CommandViewer) load() (viewer.Viewer, error) {
	if strings.TrimSpace(c.Command) == "" {
		return viewer.Viewer{}, ErrEmptyCommand
	}

	path, err := exec.LookPath(c.Command)
	if err != nil {
		return viewer.Viewer{}, fmt.Errorf("resolving %q: %w", c.Command, err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	args := append([]string(nil), c.Args...)

	return viewer.Viewer{
		Name:     c.Name,
		Priority: c.Priority,
		Open: func(ctx context.Context, url string) error {
			output, err := RunWithTimeout(ctx, path, ExpandArgs(args, url), "", timeout)
			if err != nil {
				return fmt.Errorf("%s: %w: %s", c.Command, err, strings.TrimSpace(string(output)))
			}
			return nil
		},
	}, nil
}

// Register adds c to reg under the default extension point.
func Register(reg *viewer.Registry, c CommandViewer) error {
	return reg.Register(viewer.ExtensionPoint, c.Entry())
}
