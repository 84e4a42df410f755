// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil configures the process-wide slog logger used by urlview.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLogger(debug, structured)
//
//	// Package-level helpers
//	logutil.Debug("loading viewers", "point", point)
//	logutil.Error("viewer failed", "viewer", name, "error", err)
//
//	// Component-scoped logging
//	log := logutil.NewLogger("viewer").WithDispatch(id)
//	log.Info("url handled", "viewer", name)
//
// # Debug Mode
//
// Debug logging is enabled by passing debug=true to SetupLogger or by setting
// URLVIEW_DEBUG=true.
//
// # Structured Logging
//
// structured=true switches the handler to JSON:
//
//	{"time":"2026-01-15T10:30:00Z","level":"INFO","msg":"url handled","component":"viewer","viewer":"show_url"}
//
// Otherwise logs use the slog text format:
//
//	time=2026-01-15T10:30:00Z level=INFO msg="url handled" component=viewer viewer=show_url
package logutil
