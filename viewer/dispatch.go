// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package viewer

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jongio/urlview/logutil"
)

// Dispatcher tries the viewers of one extension point until one handles a URL.
type Dispatcher struct {
	registry *Registry
	point    string
	logger   *logutil.ComponentLogger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithExtensionPoint dispatches to a point other than ExtensionPoint.
func WithExtensionPoint(point string) Option {
	return func(d *Dispatcher) {
		d.point = point
	}
}

// WithLogger overrides the component logger.
func WithLogger(logger *logutil.ComponentLogger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a dispatcher over reg. A nil reg means Default.
func NewDispatcher(reg *Registry, opts ...Option) *Dispatcher {
	if reg == nil {
		reg = Default
	}
	d := &Dispatcher{
		registry: reg,
		point:    ExtensionPoint,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Point returns the extension point this dispatcher reads.
func (d *Dispatcher) Point() string {
	return d.point
}

// Prioritized loads all viewers and orders them by descending priority.
// Equal priorities keep registration order.
func (d *Dispatcher) Prioritized() ([]Viewer, error) {
	viewers, err := d.registry.Load(d.point)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(viewers, func(i, j int) bool {
		return viewers[i].Priority > viewers[j].Priority
	})
	return viewers, nil
}

// View opens url with the highest priority viewer that accepts it.
//
// A load failure is returned before any viewer runs. Viewer errors are logged
// and the next viewer is tried; when every viewer declines, Handled is false
// and the error is nil. A done ctx stops the dispatch between attempts.
func (d *Dispatcher) View(ctx context.Context, url string) (Result, error) {
	result := Result{
		ID:  uuid.NewString(),
		URL: url,
	}
	log := d.log().WithDispatch(result.ID)

	viewers, err := d.Prioritized()
	if err != nil {
		log.Error("could not load viewers", "point", d.point, "error", err)
		recordDispatch(dispatchLoadError)
		return result, err
	}
	if len(viewers) == 0 {
		log.Warn("no viewers registered", "point", d.point)
	}

	for _, v := range viewers {
		if err := ctx.Err(); err != nil {
			recordDispatch(dispatchCanceled)
			return result, err
		}

		attempt := d.try(ctx, log.WithViewer(v.Name), v, url)
		result.Attempts = append(result.Attempts, attempt)
		if attempt.Succeeded() {
			result.Handled = true
			result.Viewer = v.Name
			recordDispatch(dispatchHandled)
			return result, nil
		}
	}

	recordDispatch(dispatchUnhandled)
	return result, nil
}

// try invokes a single viewer and converts its error into an Attempt.
func (d *Dispatcher) try(ctx context.Context, log *logutil.ComponentLogger, v Viewer, url string) Attempt {
	log.Debug("trying to open url", "url", url, "priority", v.Priority)

	start := time.Now()
	err := v.Open(ctx, url)
	attempt := Attempt{
		Viewer:   v.Name,
		Priority: v.Priority,
		Err:      err,
		Duration: time.Since(start),
	}
	recordAttempt(attempt)

	switch {
	case err == nil:
		log.Debug("url opened", "duration", attempt.Duration)
	case errors.Is(err, ErrDeclined):
		attempt.Error = err.Error()
		log.Debug("viewer declined url", "reason", err)
	default:
		attempt.Error = err.Error()
		log.Error("opening url failed, check that the viewer's target application is installed and running", "error", err)
	}
	return attempt
}

func (d *Dispatcher) log() *logutil.ComponentLogger {
	if d.logger != nil {
		return d.logger
	}
	return logutil.NewLogger("viewer")
}

// View dispatches url to the viewers registered under ExtensionPoint on the
// Default registry and reports whether one of them handled it.
func View(ctx context.Context, url string) (bool, error) {
	result, err := NewDispatcher(Default).View(ctx, url)
	return result.Handled, err
}
