// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package viewer discovers URL viewers registered under a named extension
// point and dispatches a URL to them in priority order.
//
// # Registration
//
// A viewer is a function paired with an integer priority. Packages register
// viewers on a Registry, usually the package-level Default, from main or from
// an init function:
//
//	func init() {
//	    viewer.MustRegisterViewer(viewer.Viewer{
//	        Name:     "my_viewer",
//	        Priority: 10,
//	        Open:     openInMyTool,
//	    })
//	}
//
// Registrations that need a fallible setup step (resolving an executable,
// reading a config file) use an Entry with a Load function instead. A load
// failure aborts the whole dispatch.
//
// # Dispatch
//
// View loads every viewer, sorts them by descending priority (equal
// priorities keep registration order) and invokes them one at a time until
// one returns nil:
//
//	handled, err := viewer.View(ctx, "https://example.com/problem/42")
//	if err != nil {
//	    // a viewer failed to load
//	}
//	if !handled {
//	    // every viewer declined
//	}
//
// A viewer error is logged and treated as a decline. Returning ErrDeclined
// marks a deliberate decline and is logged at debug level only.
package viewer
