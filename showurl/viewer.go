// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package showurl

import "github.com/jongio/urlview/viewer"

const (
	// ViewerName is the registration name of the built-in viewer.
	ViewerName = "show_url"
	// Priority is the built-in viewer's priority, the lowest of the defaults.
	Priority = 0
)

// Viewer wraps c as a viewer.
func Viewer(c *Client) viewer.Viewer {
	return viewer.Viewer{
		Name:     ViewerName,
		Priority: Priority,
		Open:     c.ShowURL,
	}
}

// Register adds the show_url viewer to reg under the default extension point.
func Register(reg *viewer.Registry, c *Client) error {
	return reg.RegisterViewer(viewer.ExtensionPoint, Viewer(c))
}
