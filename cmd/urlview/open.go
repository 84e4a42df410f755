// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/urlview/cliout"
	"github.com/jongio/urlview/logutil"
	"github.com/jongio/urlview/notify"
	"github.com/jongio/urlview/urlutil"
	"github.com/jongio/urlview/viewer"
)

// newNotifier is swapped in tests so no desktop notification is shown.
var newNotifier = func() (notify.Notifier, error) {
	return notify.New(notify.DefaultConfig())
}

func newOpenCommand(a *app) *cobra.Command {
	var noValidate bool

	cmd := &cobra.Command{
		Use:   "open <url>",
		Short: "Open a URL with the highest-priority viewer that accepts it",
		Example: `  urlview open https://example.com
  urlview open example.com/docs --notify`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			if !noValidate {
				url = urlutil.NormalizeScheme(url, "https")
				if err := urlutil.Validate(url); err != nil {
					return fmt.Errorf("invalid URL: %w", err)
				}
			}

			reg, err := a.registry()
			if err != nil {
				return err
			}

			result, err := viewer.NewDispatcher(reg).View(cmd.Context(), url)
			if err != nil {
				return err
			}

			if err := cliout.Print(result, func() { printResult(result) }); err != nil {
				return err
			}

			if !result.Handled {
				if a.cfg.Notify.OnFailure {
					sendUnhandled(cmd.Context(), url)
				}
				return errUnhandled
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "pass the argument to viewers as-is")
	cmd.Flags().Bool("notify", false, "show a desktop notification when no viewer opens the URL")
	return cmd
}

func printResult(result viewer.Result) {
	for _, at := range result.Attempts {
		if at.Succeeded() {
			cliout.Step("%s (priority %d): opened in %s", at.Viewer, at.Priority, at.Duration.Round(time.Millisecond))
			continue
		}
		cliout.Step("%s (priority %d): %s", at.Viewer, at.Priority, at.Error)
	}

	if result.Handled {
		cliout.Success("Opened %s with %s", result.URL, result.Viewer)
		return
	}
	if len(result.Attempts) == 0 {
		cliout.Error("No viewers registered; %s was not opened", result.URL)
		return
	}
	cliout.Error("No viewer could open %s", result.URL)
}

func sendUnhandled(ctx context.Context, url string) {
	n, err := newNotifier()
	if err != nil {
		logutil.Warn("desktop notifications unavailable", "error", err)
		return
	}
	defer func() { _ = n.Close() }()

	if !n.IsAvailable() {
		return
	}
	if err := n.Send(ctx, notify.Unhandled(url)); err != nil {
		logutil.Warn("failed to send notification", "error", err)
	}
}
