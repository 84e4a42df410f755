// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jongio/urlview/cliout"
	"github.com/jongio/urlview/viewer"
)

// listedViewer is one row of `urlview list`.
type listedViewer struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Loaded   bool   `json:"loaded"`
	Error    string `json:"error,omitempty"`
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered viewers in dispatch order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}

			listed := listViewers(reg.Entries(viewer.ExtensionPoint))
			return cliout.Print(listed, func() {
				if len(listed) == 0 {
					cliout.Warning("No viewers registered")
					return
				}
				rows := make([]cliout.TableRow, 0, len(listed))
				for _, l := range listed {
					row := cliout.TableRow{"NAME": l.Name, "PRIORITY": strconv.Itoa(l.Priority), "STATUS": "ok"}
					if !l.Loaded {
						row["PRIORITY"] = "-"
						row["STATUS"] = l.Error
					}
					rows = append(rows, row)
				}
				cliout.Table([]string{"NAME", "PRIORITY", "STATUS"}, rows)
			})
		},
	}
}

// listViewers loads each entry on its own, so one broken viewer does not
// hide the others. Loaded viewers come first in dispatch order.
func listViewers(entries []viewer.Entry) []listedViewer {
	listed := make([]listedViewer, 0, len(entries))
	for _, e := range entries {
		v, err := viewer.LoadEntry(e)
		if err != nil {
			listed = append(listed, listedViewer{Name: e.Name, Error: err.Error()})
			continue
		}
		listed = append(listed, listedViewer{Name: e.Name, Priority: v.Priority, Loaded: true})
	}

	sort.SliceStable(listed, func(i, j int) bool {
		if listed[i].Loaded != listed[j].Loaded {
			return listed[i].Loaded
		}
		return listed[i].Priority > listed[j].Priority
	})
	return listed
}
