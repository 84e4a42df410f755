// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Command urlview opens URLs with the highest-priority viewer that accepts
// them, falling back through lower-priority viewers down to the show_url
// signal.
package main

import (
	"errors"
	"os"

	"github.com/jongio/urlview/cliout"
)

const (
	exitError     = 1
	exitUnhandled = 2
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, errUnhandled) {
			os.Exit(exitUnhandled)
		}
		cliout.Error("%v", err)
		os.Exit(exitError)
	}
}
