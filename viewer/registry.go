// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package viewer

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Registry maps extension point names to their registered entries.
// Entries keep registration order. Nothing is cached between loads.
type Registry struct {
	mu     sync.RWMutex
	points map[string][]Entry
}

// Default is the registry used by the package-level helpers.
var Default = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		points: make(map[string][]Entry),
	}
}

// Register appends e to the extension point. Names are unique per point.
func (r *Registry) Register(point string, e Entry) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEntry)
	}
	if e.Load == nil {
		return fmt.Errorf("%w: %q has no loader", ErrInvalidEntry, e.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.points[point] {
		if existing.Name == e.Name {
			return fmt.Errorf("%w: %q under %q", ErrDuplicateViewer, e.Name, point)
		}
	}
	r.points[point] = append(r.points[point], e)

	slog.Debug("registered viewer", "point", point, "viewer", e.Name)
	return nil
}

// RegisterViewer registers a viewer that needs no load step.
func (r *Registry) RegisterViewer(point string, v Viewer) error {
	if v.Open == nil {
		return fmt.Errorf("%w: %q has no open function", ErrInvalidEntry, v.Name)
	}
	return r.Register(point, Static(v))
}

// Unregister removes a named entry. It reports whether the entry existed.
func (r *Registry) Unregister(point, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.points[point]
	for i, e := range entries {
		if e.Name == name {
			r.points[point] = append(entries[:i:i], entries[i+1:]...)
			return true
		}
	}
	return false
}

// Entries returns a copy of the entries registered under point.
func (r *Registry) Entries(point string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.points[point]
	result := make([]Entry, len(entries))
	copy(result, entries)
	return result
}

// Load invokes every loader registered under point, in registration order.
// The first failure is returned as a *LoadError; an empty point yields an
// empty slice.
func (r *Registry) Load(point string) ([]Viewer, error) {
	entries := r.Entries(point)

	viewers := make([]Viewer, 0, len(entries))
	for _, e := range entries {
		v, err := LoadEntry(e)
		if err != nil {
			return nil, &LoadError{Point: point, Viewer: e.Name, Err: err}
		}
		viewers = append(viewers, v)
	}
	return viewers, nil
}

// LoadEntry runs a single entry's loader and checks the result the same way
// Load does. The returned viewer carries the entry's name.
func LoadEntry(e Entry) (Viewer, error) {
	v, err := e.Load()
	if err != nil {
		return Viewer{}, err
	}
	if v.Open == nil {
		return Viewer{}, fmt.Errorf("%w: no open function", ErrInvalidEntry)
	}
	v.Name = e.Name
	return v, nil
}

// Clear removes every entry under point.
func (r *Registry) Clear(point string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.points, point)
}

// Register adds e to ExtensionPoint on the Default registry.
func Register(e Entry) error {
	return Default.Register(ExtensionPoint, e)
}

// RegisterViewer adds v to ExtensionPoint on the Default registry.
func RegisterViewer(v Viewer) error {
	return Default.RegisterViewer(ExtensionPoint, v)
}

// MustRegisterViewer is RegisterViewer for init functions; it panics on error.
func MustRegisterViewer(v Viewer) {
	if err := RegisterViewer(v); err != nil {
		panic(err)
	}
}
