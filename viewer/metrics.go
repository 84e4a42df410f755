// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package viewer

import (
	"errors"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	dispatchHandled   = "handled"
	dispatchUnhandled = "unhandled"
	dispatchLoadError = "load_error"
	dispatchCanceled  = "canceled"

	outcomeSuccess  = "success"
	outcomeDeclined = "declined"
	outcomeFailed   = "failed"
)

// metricsEnabled controls whether dispatch metrics are recorded.
var metricsEnabled atomic.Bool

var (
	dispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urlview_dispatch_total",
			Help: "Total number of URL dispatches by result",
		},
		[]string{"result"},
	)

	viewerAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "urlview_viewer_attempts_total",
			Help: "Viewer invocations by outcome",
		},
		[]string{"viewer", "outcome"},
	)

	viewerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "urlview_viewer_duration_seconds",
			Help:    "Duration of viewer invocations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"viewer"},
	)
)

// EnableMetrics turns Prometheus recording on or off for all dispatchers.
func EnableMetrics(enabled bool) {
	metricsEnabled.Store(enabled)
}

func recordDispatch(result string) {
	if !metricsEnabled.Load() {
		return
	}
	dispatchTotal.With(prometheus.Labels{"result": result}).Inc()
}

func recordAttempt(a Attempt) {
	if !metricsEnabled.Load() {
		return
	}
	viewerAttempts.With(prometheus.Labels{
		"viewer":  a.Viewer,
		"outcome": attemptOutcome(a),
	}).Inc()
	viewerDuration.With(prometheus.Labels{"viewer": a.Viewer}).Observe(a.Duration.Seconds())
}

func attemptOutcome(a Attempt) string {
	switch {
	case a.Err == nil:
		return outcomeSuccess
	case errors.Is(a.Err, ErrDeclined):
		return outcomeDeclined
	default:
		return outcomeFailed
	}
}
