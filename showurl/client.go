// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package showurl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/jongio/urlview/logutil"
)

const (
	// DefaultPort is the well-known port the show_url listener binds.
	DefaultPort = 31415
	// Path is the request path of the show_url endpoint.
	Path = "/show_url"
	// DefaultEndpoint is where the built-in viewer signals URLs.
	DefaultEndpoint = "http://localhost:31415/show_url"
	// DefaultTimeout bounds a single signal, connection included.
	DefaultTimeout = 5 * time.Second

	// maxDrain caps how much of an ignored response body is read.
	maxDrain = 64 * 1024
)

// Payload is the JSON body exchanged on the show_url endpoint.
type Payload struct {
	URL string `json:"url"`
}

// Client signals URLs to a show_url endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for endpoint. Empty endpoint and zero timeout
// select the defaults.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			// The URL must never be forwarded past the local listener.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: timeout,
				}).DialContext,
				MaxIdleConns:      1,
				IdleConnTimeout:   30 * time.Second,
				DisableKeepAlives: true,
			},
		},
	}
}

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ShowURL posts url to the endpoint. The response is not inspected: any
// status counts as delivered.
func (c *Client) ShowURL(ctx context.Context, url string) error {
	body, err := json.Marshal(Payload{URL: url})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("signaling %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))

	logutil.Debug("show_url delivered", "endpoint", c.endpoint, "status", resp.StatusCode)
	return nil
}
