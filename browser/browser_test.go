// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package browser

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jongio/urlview/viewer"
)

// stubOpen replaces the launcher for the duration of a test.
func stubOpen(t *testing.T, fn func(string) error) {
	t.Helper()
	prev := openURL
	openURL = fn
	t.Cleanup(func() { openURL = prev })
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{"default", true},
		{"system", true},
		{"none", true},
		{"invalid", false},
		{"", false},
		{"chrome", false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := IsValid(tt.target); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		target Target
		want   Target
	}{
		{TargetNone, TargetNone},
		{TargetDefault, TargetSystem},
		{TargetSystem, TargetSystem},
		{Target(""), TargetSystem},
	}

	for _, tt := range tests {
		if got := ResolveTarget(tt.target); got != tt.want {
			t.Errorf("ResolveTarget(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestLaunch(t *testing.T) {
	var opened atomic.Int32
	stubOpen(t, func(string) error {
		opened.Add(1)
		return nil
	})

	tests := []struct {
		name       string
		opts       LaunchOptions
		wantErr    bool
		wantOpened int32
	}{
		{
			name:       "system target opens",
			opts:       LaunchOptions{URL: "http://localhost:4280", Target: TargetSystem},
			wantOpened: 1,
		},
		{
			name:       "none target does not launch",
			opts:       LaunchOptions{URL: "https://localhost:4280", Target: TargetNone},
			wantOpened: 0,
		},
		{
			name:    "file URL rejected",
			opts:    LaunchOptions{URL: "file:///etc/passwd", Target: TargetSystem},
			wantErr: true,
		},
		{
			name:    "ftp URL rejected",
			opts:    LaunchOptions{URL: "ftp://example.com/file", Target: TargetSystem},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opened.Store(0)
			err := Launch(context.Background(), tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Launch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := opened.Load(); got != tt.wantOpened {
				t.Errorf("launcher called %d times, want %d", got, tt.wantOpened)
			}
		})
	}
}

func TestLaunch_LauncherError(t *testing.T) {
	stubOpen(t, func(string) error { return errors.New("xdg-open: not found") })

	err := Launch(context.Background(), LaunchOptions{URL: "https://example.com"})
	if err == nil || !strings.Contains(err.Error(), "xdg-open: not found") {
		t.Fatalf("expected launcher error, got %v", err)
	}
}

func TestLaunch_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	stubOpen(t, func(string) error {
		<-release
		return nil
	})

	err := Launch(context.Background(), LaunchOptions{URL: "https://example.com", Timeout: 20 * time.Millisecond})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestViewer(t *testing.T) {
	var got string
	stubOpen(t, func(url string) error {
		got = url
		return nil
	})

	v := Viewer(-10, TargetDefault)
	if v.Name != ViewerName || v.Priority != -10 {
		t.Fatalf("unexpected viewer: %+v", v)
	}
	if err := v.Open(context.Background(), "https://example.com/x"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got != "https://example.com/x" {
		t.Errorf("launcher got %q", got)
	}
}

func TestViewer_NoneDeclines(t *testing.T) {
	stubOpen(t, func(string) error {
		t.Fatal("launcher must not run for target none")
		return nil
	})

	err := Viewer(0, TargetNone).Open(context.Background(), "https://example.com")
	if !errors.Is(err, viewer.ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}

func TestGetTargetDisplayName(t *testing.T) {
	tests := []struct {
		target Target
		want   string
	}{
		{TargetSystem, "default browser"},
		{TargetDefault, "default browser"},
		{TargetNone, "none"},
	}

	for _, tt := range tests {
		if got := GetTargetDisplayName(tt.target); got != tt.want {
			t.Errorf("GetTargetDisplayName(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestFormatValidTargets(t *testing.T) {
	if got := FormatValidTargets(); got != "default, system, none" {
		t.Errorf("FormatValidTargets() = %q", got)
	}
}
