// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	"github.com/jongio/urlview/cliout"
	"github.com/jongio/urlview/viewer"
)

// maxSuggestDistance bounds the edit distance for "did you mean" hints.
const maxSuggestDistance = 3

func newTryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "try <viewer> <url>",
		Short: "Open a URL with one named viewer, skipping the others",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, url := args[0], args[1]

			reg, err := a.registry()
			if err != nil {
				return err
			}

			entry, ok := findEntry(reg.Entries(viewer.ExtensionPoint), name)
			if !ok {
				return unknownViewerError(reg, name)
			}

			single := viewer.NewRegistry()
			if err := single.Register(viewer.ExtensionPoint, entry); err != nil {
				return err
			}

			result, err := viewer.NewDispatcher(single).View(cmd.Context(), url)
			if err != nil {
				return err
			}
			if err := cliout.Print(result, func() { printResult(result) }); err != nil {
				return err
			}
			if !result.Handled {
				return errUnhandled
			}
			return nil
		},
	}
}

func findEntry(entries []viewer.Entry, name string) (viewer.Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return viewer.Entry{}, false
}

func unknownViewerError(reg *viewer.Registry, name string) error {
	if s := suggest(reg.Entries(viewer.ExtensionPoint), name); s != "" {
		return fmt.Errorf("unknown viewer %q, did you mean %q?", name, s)
	}
	return fmt.Errorf("unknown viewer %q (see 'urlview list')", name)
}

// suggest returns the registered name closest to name, or "" if none is close.
func suggest(entries []viewer.Entry, name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, e := range entries {
		if d := levenshtein.ComputeDistance(name, e.Name); d < bestDist {
			best, bestDist = e.Name, d
		}
	}
	return best
}
