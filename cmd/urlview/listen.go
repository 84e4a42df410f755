// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/urlview/browser"
	"github.com/jongio/urlview/cliout"
	"github.com/jongio/urlview/logutil"
	"github.com/jongio/urlview/showurl"
)

const shutdownTimeout = 5 * time.Second

// listenReady is called with the bound address; tests hook it.
var listenReady = func(string) {}

func newListenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Serve the show_url endpoint and open received URLs",
		Long: `listen runs the receiving side of the show_url signal. Each accepted URL is
opened in the browser, or only printed when listen.launch is false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := showurl.NewServer(showurl.ServerConfig{
				Address:   a.cfg.Listen.Address,
				RateLimit: a.cfg.Listen.RateLimit,
				Burst:     a.cfg.Listen.Burst,
				OnReady:   listenReady,
			}, a.opener())

			if err := srv.Start(ctx); err != nil {
				return err
			}
			if !cliout.IsJSON() {
				cliout.Success("Listening on http://%s%s", srv.Addr(), showurl.Path)
				if a.cfg.Listen.Launch {
					cliout.Info("Received URLs open in: %s", browser.GetTargetDisplayName(browser.Target(a.cfg.Browser.Target)))
				} else {
					cliout.Info("Received URLs are printed, not opened")
				}
			}

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("address", showurl.DefaultAddress, "address to listen on")
	return cmd
}

// opener returns what the listener does with each accepted URL.
func (a *app) opener() showurl.Opener {
	if !a.cfg.Listen.Launch {
		return func(_ context.Context, url string) error {
			if cliout.IsJSON() {
				return cliout.PrintJSON(showurl.Payload{URL: url})
			}
			cliout.Plain("%s", url)
			return nil
		}
	}

	target := browser.Target(a.cfg.Browser.Target)
	return func(ctx context.Context, url string) error {
		logutil.Debug("launching browser", "url", url, "target", target)
		return browser.Launch(ctx, browser.LaunchOptions{URL: url, Target: target})
	}
}
