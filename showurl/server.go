// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package showurl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/jongio/urlview/logutil"
	"github.com/jongio/urlview/urlutil"
)

// DefaultAddress is the listener's default bind address.
var DefaultAddress = fmt.Sprintf("127.0.0.1:%d", DefaultPort)

const maxRequestBody = 64 * 1024

// Opener receives each accepted URL.
type Opener func(ctx context.Context, url string) error

// ServerConfig holds the configuration for the show_url listener.
type ServerConfig struct {
	// Address to listen on. Port 0 picks a free port.
	Address string
	// RateLimit is accepted requests per second; zero or less disables limiting.
	RateLimit float64
	// Burst is the limiter bucket size. Defaults to twice RateLimit, at least 1.
	Burst int
	// OnReady is called with the bound address once listening.
	OnReady func(addr string)
}

// Server is the listening side of the show_url protocol.
type Server struct {
	Config ServerConfig

	open       Opener
	limiter    *rate.Limiter
	logger     *logutil.ComponentLogger
	httpServer *http.Server
	listener   net.Listener
	done       chan struct{} // closed when the serve goroutine exits
	serveErr   error
}

// NewServer creates a listener that passes accepted URLs to open.
func NewServer(cfg ServerConfig, open Opener) *Server {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}

	s := &Server{
		Config: cfg,
		open:   open,
		logger: logutil.NewLogger("showurl"),
	}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(cfg.RateLimit * 2)
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

// Handler returns the HTTP routes: POST /show_url, GET /health and GET /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+Path, s.handleShowURL)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Start binds the listener and serves in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.Config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Config.Address, err)
	}
	s.listener = listener

	if host, _, err := net.SplitHostPort(listener.Addr().String()); err == nil && !net.ParseIP(host).IsLoopback() {
		s.logger.Warn("show_url listener is reachable from other machines", "address", listener.Addr().String())
	}

	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.serveErr = err
			s.logger.Error("show_url listener stopped", "error", err)
		}
	}()

	s.logger.Info("listening for show_url requests", "address", s.Addr())
	if s.Config.OnReady != nil {
		s.Config.OnReady(s.Addr())
	}
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down show_url listener: %w", err)
	}
	<-s.done
	return s.serveErr
}

func (s *Server) handleShowURL(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil && !s.limiter.Allow() {
		s.reject(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var payload Payload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&payload); err != nil {
		s.reject(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := urlutil.Validate(payload.URL); err != nil {
		s.reject(w, http.StatusBadRequest, err.Error())
		return
	}

	log := s.logger.WithFields("url", payload.URL)
	if err := s.open(r.Context(), payload.URL); err != nil {
		log.Error("could not open url", "error", err)
		s.reject(w, http.StatusBadGateway, err.Error())
		return
	}

	log.Info("url opened")
	recordRequest(http.StatusNoContent)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reject(w http.ResponseWriter, status int, msg string) {
	s.logger.Debug("rejected show_url request", "status", status, "reason", msg)
	recordRequest(status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
