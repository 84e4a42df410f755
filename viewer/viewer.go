// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ExtensionPoint is the name built-in and third-party viewers register under.
const ExtensionPoint = "inspectorapp_viewers"

// Func opens url. A nil return means the URL was handled.
type Func func(ctx context.Context, url string) error

// Viewer pairs a named capability with its dispatch priority.
// Higher priorities are tried first.
type Viewer struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Open     Func   `json:"-"`
}

// Entry is a registration under an extension point. Load is called on every
// dispatch and may fail, for example when a viewer's executable is missing.
type Entry struct {
	Name string
	Load func() (Viewer, error)
}

// Static returns an Entry whose loader always yields v.
func Static(v Viewer) Entry {
	return Entry{
		Name: v.Name,
		Load: func() (Viewer, error) { return v, nil },
	}
}

var (
	// ErrDeclined lets a viewer decline a URL without it being reported as a failure.
	ErrDeclined = errors.New("viewer declined url")
	// ErrLoad matches every LoadError.
	ErrLoad = errors.New("viewer load failed")
	// ErrDuplicateViewer is returned when a name is registered twice under one extension point.
	ErrDuplicateViewer = errors.New("viewer already registered")
	// ErrInvalidEntry is returned for entries without a name or loader.
	ErrInvalidEntry = errors.New("invalid viewer entry")
)

// LoadError reports a viewer that could not be loaded.
type LoadError struct {
	Point  string
	Viewer string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading viewer %q from %q: %v", e.Viewer, e.Point, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrLoad) hold for any LoadError.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// Attempt records one viewer invocation within a dispatch.
type Attempt struct {
	Viewer   string        `json:"viewer"`
	Priority int           `json:"priority"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Succeeded reports whether the viewer handled the URL.
func (a Attempt) Succeeded() bool {
	return a.Err == nil
}

// Result is the outcome of a single dispatch. It is not retained.
type Result struct {
	ID       string    `json:"id"`
	URL      string    `json:"url"`
	Handled  bool      `json:"handled"`
	Viewer   string    `json:"viewer,omitempty"`
	Attempts []Attempt `json:"attempts"`
}
