// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package showurl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingOpener collects URLs passed to the server.
type recordingOpener struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (o *recordingOpener) open(_ context.Context, url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return o.err
}

func (o *recordingOpener) opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.urls...)
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_ShowURL(t *testing.T) {
	opener := &recordingOpener{}
	h := NewServer(ServerConfig{}, opener.open).Handler()

	before := testutil.ToFloat64(showURLRequests.WithLabelValues("204"))
	rec := post(t, h, `{"url":"https://example.com/problem/7"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"https://example.com/problem/7"}, opener.opened())
	assert.Equal(t, before+1, testutil.ToFloat64(showURLRequests.WithLabelValues("204")))
}

func TestServer_RejectsBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"malformed json", `{"url":`, "invalid request body"},
		{"not an object", `"https://example.com"`, "invalid request body"},
		{"missing url", `{}`, "cannot be empty"},
		{"file url", `{"url":"file:///etc/passwd"}`, "must use http"},
		{"javascript url", `{"url":"javascript:alert(1)"}`, "must use http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := &recordingOpener{}
			rec := post(t, NewServer(ServerConfig{}, opener.open).Handler(), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
			assert.Empty(t, opener.opened())
		})
	}
}

func TestServer_RejectsOversizedBody(t *testing.T) {
	opener := &recordingOpener{}
	body := `{"url":"https://example.com/` + strings.Repeat("a", maxRequestBody) + `"}`

	rec := post(t, NewServer(ServerConfig{}, opener.open).Handler(), body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, opener.opened())
}

func TestServer_MethodNotAllowed(t *testing.T) {
	h := NewServer(ServerConfig{}, (&recordingOpener{}).open).Handler()

	req := httptest.NewRequest(http.MethodGet, Path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_OpenerFailure(t *testing.T) {
	opener := &recordingOpener{err: errors.New("no browser")}
	rec := post(t, NewServer(ServerConfig{}, opener.open).Handler(), `{"url":"https://example.com"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "no browser")
}

func TestServer_RateLimit(t *testing.T) {
	opener := &recordingOpener{}
	h := NewServer(ServerConfig{RateLimit: 0.001, Burst: 2}, opener.open).Handler()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, post(t, h, `{"url":"https://example.com"}`).Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	assert.Len(t, opener.opened(), 2)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	h := NewServer(ServerConfig{}, (&recordingOpener{}).open).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	// Make sure the counter has at least one series before scraping.
	post(t, h, `{"url":"https://example.com"}`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "urlview_show_url_requests_total")
}

func TestServer_StartAndClientRoundTrip(t *testing.T) {
	opener := &recordingOpener{}
	var readyAddr string
	srv := NewServer(ServerConfig{
		Address: "127.0.0.1:0",
		OnReady: func(addr string) { readyAddr = addr },
	}, opener.open)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Start(ctx))
	defer func() { assert.NoError(t, srv.Shutdown(context.Background())) }()

	require.NotEmpty(t, srv.Addr())
	assert.Equal(t, srv.Addr(), readyAddr)

	client := NewClient("http://"+srv.Addr()+Path, time.Second)
	require.NoError(t, client.ShowURL(ctx, "https://example.com/round-trip"))

	assert.Equal(t, []string{"https://example.com/round-trip"}, opener.opened())
}

func TestServer_StartFailsOnBusyPort(t *testing.T) {
	first := NewServer(ServerConfig{Address: "127.0.0.1:0"}, (&recordingOpener{}).open)
	require.NoError(t, first.Start(context.Background()))
	defer func() { _ = first.Shutdown(context.Background()) }()

	second := NewServer(ServerConfig{Address: first.Addr()}, (&recordingOpener{}).open)
	err := second.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	srv := NewServer(ServerConfig{}, (&recordingOpener{}).open)
	assert.NoError(t, srv.Shutdown(context.Background()))
	assert.Empty(t, srv.Addr())
}

func TestServer_ErrorResponseIsJSON(t *testing.T) {
	rec := post(t, NewServer(ServerConfig{}, (&recordingOpener{}).open).Handler(), `{}`)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), `{"error":`))
}
