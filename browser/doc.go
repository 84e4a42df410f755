// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package browser opens URLs in the user's web browser and exposes that as a
// urlview viewer.
//
// Launching is delegated to github.com/pkg/browser, which uses
// "cmd /c start" on Windows, "open" on macOS and xdg-open (with fallbacks)
// on Linux and the BSDs. This package adds URL validation, target selection
// and a timeout.
//
// # Browser Targets
//
//   - TargetDefault: the system default browser (alias for TargetSystem)
//   - TargetSystem: the system default browser
//   - TargetNone: never launch; Launch returns nil
//
// # Example Usage
//
//	err := browser.Launch(ctx, browser.LaunchOptions{
//	    URL:    "https://example.com",
//	    Target: browser.TargetDefault,
//	})
//
// Registering the browser as a low priority fallback viewer:
//
//	reg.RegisterViewer(viewer.ExtensionPoint, browser.Viewer(-10, browser.TargetSystem))
//
// # Error Handling
//
// Launch blocks until the launcher command returns or the timeout expires,
// so a missing launcher is reported to the caller. The dispatcher treats
// that error as a decline and moves on to the next viewer.
//
// Non-http(s) URLs are rejected before anything is executed:
//
//	err := browser.Launch(ctx, browser.LaunchOptions{URL: "file:///etc/passwd"})
//	// invalid URL scheme: URL must start with http:// or https://
package browser
