package urlutil

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "https", url: "https://example.com"},
		{name: "http with port and path", url: "http://localhost:3000/problem/42?x=1"},
		{name: "surrounding whitespace", url: "  https://example.com  "},
		{name: "empty", url: "", wantErr: "cannot be empty"},
		{name: "whitespace only", url: "   ", wantErr: "cannot be empty"},
		{name: "no scheme", url: "example.com", wantErr: "must use http:// or https://"},
		{name: "file scheme", url: "file:///etc/passwd", wantErr: "got: file"},
		{name: "javascript scheme", url: "javascript:alert(1)", wantErr: "got: javascript"},
		{name: "missing host", url: "https://", wantErr: "missing host"},
		{name: "too long", url: "https://example.com/" + strings.Repeat("a", MaxURLLength), wantErr: "maximum length"},
		{name: "bad escape", url: "https://example.com/%zz", wantErr: "invalid URL format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.url)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate(%q) unexpected error: %v", tt.url, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate(%q) expected error containing %q", tt.url, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate(%q) error = %q, want it to contain %q", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestParse(t *testing.T) {
	parsed, err := Parse(" https://example.com:8443/a/b ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Host != "example.com:8443" || parsed.Path != "/a/b" {
		t.Errorf("unexpected parse result: host=%q path=%q", parsed.Host, parsed.Path)
	}

	if _, err := Parse("ftp://example.com"); err == nil {
		t.Error("expected error for ftp scheme")
	}
}

func TestValidateLocalEndpoint(t *testing.T) {
	tests := []struct {
		url      string
		wantErr  bool
		notLocal bool
	}{
		{url: "http://localhost:31415/show_url"},
		{url: "http://127.0.0.1:31415/show_url"},
		{url: "http://[::1]:31415/show_url"},
		{url: "http://example.com:31415/show_url", wantErr: true, notLocal: true},
		{url: "http://10.0.0.5/show_url", wantErr: true, notLocal: true},
		{url: "localhost:31415", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateLocalEndpoint(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateLocalEndpoint(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if tt.notLocal && !errors.Is(err, ErrNotLocal) {
				t.Errorf("expected ErrNotLocal, got %v", err)
			}
		})
	}
}

func TestNormalizeScheme(t *testing.T) {
	tests := []struct {
		in, scheme, want string
	}{
		{"example.com", "https", "https://example.com"},
		{"example.com/path", "http", "http://example.com/path"},
		{"http://example.com", "https", "http://example.com"},
		{"https://example.com", "http", "https://example.com"},
		{"  example.com  ", "https", "https://example.com"},
		{"localhost:3000", "http", "http://localhost:3000"},
		{"example.com:8080/x", "https", "https://example.com:8080/x"},
		{"127.0.0.1:8080", "http", "http://127.0.0.1:8080"},
		{"ftp://example.com", "https", "ftp://example.com"},
		{"file:///etc/passwd", "https", "file:///etc/passwd"},
		{"file:/etc/passwd", "https", "file:/etc/passwd"},
		{"javascript:alert(1)", "https", "javascript:alert(1)"},
		{"javascript://x", "https", "javascript://x"},
		{"mailto:a@example.com", "https", "mailto:a@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeScheme(tt.in, tt.scheme); got != tt.want {
				t.Errorf("NormalizeScheme(%q, %q) = %q, want %q", tt.in, tt.scheme, got, tt.want)
			}
		})
	}
}

func TestNormalizeScheme_OtherSchemesFailValidation(t *testing.T) {
	for _, in := range []string{"ftp://example.com", "file:///etc/passwd", "javascript:alert(1)", "javascript://x"} {
		t.Run(in, func(t *testing.T) {
			if err := Validate(NormalizeScheme(in, "https")); err == nil {
				t.Errorf("Validate(NormalizeScheme(%q)) = nil, want error", in)
			}
		})
	}
}

func TestIsLocalhost(t *testing.T) {
	for _, host := range []string{"localhost", "LOCALHOST", "127.0.0.1", "::1", "[::1]"} {
		if !IsLocalhost(host) {
			t.Errorf("IsLocalhost(%q) = false, want true", host)
		}
	}
	for _, host := range []string{"", "example.com", "127.0.0.2", "0.0.0.0"} {
		if IsLocalhost(host) {
			t.Errorf("IsLocalhost(%q) = true, want false", host)
		}
	}
}
