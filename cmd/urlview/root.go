// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jongio/urlview/browser"
	"github.com/jongio/urlview/cliout"
	"github.com/jongio/urlview/cmdutil"
	"github.com/jongio/urlview/config"
	"github.com/jongio/urlview/logutil"
	"github.com/jongio/urlview/showurl"
	"github.com/jongio/urlview/version"
	"github.com/jongio/urlview/viewer"
)

// errUnhandled is returned when every viewer declined the URL. The user has
// already been told, so main exits without printing it again.
var errUnhandled = errors.New("no viewer handled the url")

// annotationSkipConfig marks commands that must work without a valid config.
const annotationSkipConfig = "urlview/skip-config"

// app carries state shared by all subcommands.
type app struct {
	configPath string
	debug      bool
	structured bool
	output     string

	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "urlview",
		Short: "Open URLs with the best available viewer",
		Long: `urlview hands a URL to the registered viewers in descending priority order
until one of them opens it. The built-in show_url viewer signals a local
listener on port 31415; a browser viewer and external command viewers can be
enabled in the config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $URLVIEW_CONFIG or ~/.config/urlview/config.yaml)")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&a.structured, "structured-logs", false, "emit logs as JSON")
	flags.StringVarP(&a.output, "output", "o", "default", "output format (default, json)")

	versionCmd := version.NewCommand(version.New("urlview"))
	versionCmd.Annotations = map[string]string{annotationSkipConfig: "true"}

	root.AddCommand(
		newOpenCommand(a),
		newTryCommand(a),
		newListCommand(a),
		newListenCommand(a),
		newConfigCommand(a),
		versionCmd,
	)
	return root
}

// setup applies global flags and, unless the command opts out, loads config.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := cliout.SetFormat(a.output); err != nil {
		return err
	}

	if cmd.Annotations[annotationSkipConfig] != "" {
		logutil.SetupLogger(a.debug, a.structured)
		return nil
	}

	cfg, err := config.Load(config.Options{Path: a.configPath, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	a.cfg = cfg

	logutil.SetupLogger(cfg.Log.Debug, cfg.Log.Structured)
	if !logutil.IsDebugEnabled() {
		logutil.SetLevel(logutil.ParseLevel(cfg.Log.Level))
	}
	viewer.EnableMetrics(cfg.Metrics.Enabled)
	return nil
}

// registry builds the viewer registry from config, on top of anything
// linked-in packages registered on viewer.Default.
func (a *app) registry() (*viewer.Registry, error) {
	reg := viewer.NewRegistry()
	for _, e := range viewer.Default.Entries(viewer.ExtensionPoint) {
		if err := reg.Register(viewer.ExtensionPoint, e); err != nil {
			return nil, err
		}
	}

	client := showurl.NewClient(a.cfg.ShowURL.Endpoint, a.cfg.ShowURL.Timeout)
	if err := showurl.Register(reg, client); err != nil {
		return nil, err
	}

	if a.cfg.Browser.Enabled {
		v := browser.Viewer(a.cfg.Browser.Priority, browser.Target(a.cfg.Browser.Target))
		if err := reg.RegisterViewer(viewer.ExtensionPoint, v); err != nil {
			return nil, err
		}
	}

	for _, c := range a.cfg.Commands {
		err := cmdutil.Register(reg, cmdutil.CommandViewer{
			Name:     c.Name,
			Priority: c.Priority,
			Command:  c.Command,
			Args:     c.Args,
			Timeout:  c.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("registering command viewer: %w", err)
		}
	}
	return reg, nil
}
