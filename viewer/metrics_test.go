// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package viewer

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordedWhenEnabled(t *testing.T) {
	captureLogs(t)
	EnableMetrics(true)
	t.Cleanup(func() { EnableMetrics(false) })

	handledBefore := testutil.ToFloat64(dispatchTotal.WithLabelValues(dispatchHandled))
	failedBefore := testutil.ToFloat64(viewerAttempts.WithLabelValues("metrics-fail", outcomeFailed))
	declinedBefore := testutil.ToFloat64(viewerAttempts.WithLabelValues("metrics-decline", outcomeDeclined))
	okBefore := testutil.ToFloat64(viewerAttempts.WithLabelValues("metrics-ok", outcomeSuccess))

	calls := &callLog{}
	d := newTestDispatcher(t,
		calls.viewer("metrics-fail", 3, errors.New("down")),
		calls.viewer("metrics-decline", 2, ErrDeclined),
		calls.viewer("metrics-ok", 1, nil),
	)

	_, err := d.View(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, handledBefore+1, testutil.ToFloat64(dispatchTotal.WithLabelValues(dispatchHandled)))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(viewerAttempts.WithLabelValues("metrics-fail", outcomeFailed)))
	assert.Equal(t, declinedBefore+1, testutil.ToFloat64(viewerAttempts.WithLabelValues("metrics-decline", outcomeDeclined)))
	assert.Equal(t, okBefore+1, testutil.ToFloat64(viewerAttempts.WithLabelValues("metrics-ok", outcomeSuccess)))
}

func TestMetrics_SkippedWhenDisabled(t *testing.T) {
	captureLogs(t)
	EnableMetrics(false)

	before := testutil.ToFloat64(dispatchTotal.WithLabelValues(dispatchUnhandled))

	_, err := NewDispatcher(NewRegistry()).View(context.Background(), "https://example.com")
	require.NoError(t, err)

	assert.Equal(t, before, testutil.ToFloat64(dispatchTotal.WithLabelValues(dispatchUnhandled)))
}

func TestAttemptOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil is success", nil, outcomeSuccess},
		{"declined", ErrDeclined, outcomeDeclined},
		{"wrapped decline", errors.Join(errors.New("not mine"), ErrDeclined), outcomeDeclined},
		{"other error", errors.New("connection refused"), outcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, attemptOutcome(Attempt{Err: tt.err}))
		})
	}
}
