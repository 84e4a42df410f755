// Package cliout provides structured output formatting for urlview commands.
//
// Two formats are supported: default (human-readable text with colors and
// Unicode symbols) and json (machine-readable, for scripts). Colors are
// disabled automatically when stdout is not a terminal or NO_COLOR is set.
//
//	if err := cliout.SetFormat("json"); err != nil {
//	    return err
//	}
//	return cliout.Print(result, func() {
//	    cliout.Success("Opened %s with %s", result.URL, result.Viewer)
//	})
package cliout
