// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	pkgbrowser "github.com/pkg/browser"

	"github.com/jongio/urlview/viewer"
)

// Target represents the browser target for launching URLs.
type Target string

const (
	// TargetDefault uses the system default browser
	TargetDefault Target = "default"
	// TargetSystem uses the system default browser (alias for TargetDefault)
	TargetSystem Target = "system"
	// TargetNone disables browser launching
	TargetNone Target = "none"
)

// ViewerName is the name the browser viewer registers under.
const ViewerName = "browser"

// DefaultTimeout bounds how long Launch waits for the launcher command.
const DefaultTimeout = 5 * time.Second

// openURL is swapped in tests so nothing is actually launched.
var openURL = pkgbrowser.OpenURL

func init() {
	// The launcher's own output would interleave with CLI output.
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard
}

// ValidTargets returns all valid browser target values.
func ValidTargets() []Target {
	return []Target{TargetDefault, TargetSystem, TargetNone}
}

// IsValid checks if a target string is valid.
func IsValid(target string) bool {
	t := Target(target)
	for _, valid := range ValidTargets() {
		if t == valid {
			return true
		}
	}
	return false
}

// ResolveTarget maps "default" to "system" and keeps "none".
func ResolveTarget(target Target) Target {
	if target == TargetNone {
		return TargetNone
	}
	return TargetSystem
}

// LaunchOptions contains options for launching a browser.
type LaunchOptions struct {
	// URL to open
	URL string
	// Target browser to use
	Target Target
	// Timeout for the launch command (default 5 seconds)
	Timeout time.Duration
}

// Launch opens opts.URL in the browser selected by opts.Target and waits for
// the launcher to return.
func Launch(ctx context.Context, opts LaunchOptions) error {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	if !strings.HasPrefix(opts.URL, "http://") && !strings.HasPrefix(opts.URL, "https://") {
		return fmt.Errorf("invalid URL scheme: URL must start with http:// or https://")
	}

	if ResolveTarget(opts.Target) == TargetNone {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	// pkg/browser has no context support; the launcher is left to finish on
	// its own if we stop waiting.
	open := openURL
	done := make(chan error, 1)
	go func() {
		done <- open(opts.URL)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("opening browser: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("opening browser: %w", ctx.Err())
	}
}

// Viewer returns a viewer that opens URLs in the browser selected by target.
func Viewer(priority int, target Target) viewer.Viewer {
	return viewer.Viewer{
		Name:     ViewerName,
		Priority: priority,
		Open: func(ctx context.Context, url string) error {
			if ResolveTarget(target) == TargetNone {
				return fmt.Errorf("%w: browser target is none", viewer.ErrDeclined)
			}
			return Launch(ctx, LaunchOptions{URL: url, Target: target})
		},
	}
}

// GetTargetDisplayName returns a human-readable name for the browser target.
func GetTargetDisplayName(target Target) string {
	switch ResolveTarget(target) {
	case TargetNone:
		return "none"
	default:
		return "default browser"
	}
}

// FormatValidTargets returns a comma-separated list of valid targets.
func FormatValidTargets() string {
	targets := ValidTargets()
	strs := make([]string, len(targets))
	for i, t := range targets {
		strs[i] = string(t)
	}
	return strings.Join(strs, ", ")
}
