// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package showurl implements the local show_url signaling protocol: a JSON
// POST of {"url": "..."} to http://localhost:31415/show_url.
//
// The Client side is urlview's built-in priority 0 viewer. It hands the URL
// to whatever is listening on the port, typically an editor extension that
// renders it in a tab. Any response counts as handled; transport errors such
// as connection refused are returned so the dispatcher moves on.
//
// The Server side is the listener, for machines without such an extension.
// It validates the URL, rate limits requests and passes the URL to an
// Opener, usually the system browser.
package showurl
