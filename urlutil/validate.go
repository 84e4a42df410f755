package urlutil

import (
	"errors"
	"fmt"
	neturl "net/url"
	"strings"
)

const (
	// MaxURLLength is the RFC 2616 practical limit for URL length
	MaxURLLength = 2048
)

// ErrNotLocal is returned by ValidateLocalEndpoint for non-loopback hosts.
var ErrNotLocal = errors.New("endpoint must be on localhost")

// Validate checks that rawURL is a well-formed http or https URL with a host.
//
// Example:
//
//	if err := urlutil.Validate("https://example.com"); err != nil {
//		return fmt.Errorf("invalid URL: %w", err)
//	}
func Validate(rawURL string) error {
	_, err := Parse(rawURL)
	return err
}

// Parse validates rawURL and returns it parsed.
func Parse(rawURL string) (*neturl.URL, error) {
	rawURL = strings.TrimSpace(rawURL)

	if rawURL == "" {
		return nil, fmt.Errorf("url cannot be empty")
	}
	if len(rawURL) > MaxURLLength {
		return nil, fmt.Errorf("url exceeds maximum length of %d characters", MaxURLLength)
	}

	parsed, err := neturl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		if parsed.Scheme == "" {
			return nil, fmt.Errorf("url must use http:// or https://")
		}
		return nil, fmt.Errorf("url must use http:// or https://, got: %s", parsed.Scheme)
	}

	if parsed.Host == "" {
		return nil, fmt.Errorf("url missing host/domain")
	}

	return parsed, nil
}

// ValidateLocalEndpoint validates rawURL and additionally requires a loopback
// host, so URLs are only ever signaled to processes on this machine.
func ValidateLocalEndpoint(rawURL string) error {
	parsed, err := Parse(rawURL)
	if err != nil {
		return err
	}
	if !IsLocalhost(parsed.Hostname()) {
		return fmt.Errorf("%w: got %s", ErrNotLocal, parsed.Hostname())
	}
	return nil
}

// NormalizeScheme prepends defaultScheme ("http" or "https") when rawURL has
// no scheme. A bare host:port such as "localhost:3000" counts as having no
// scheme. Any other scheme is left alone so Validate can reject it.
//
// Example:
//
//	urlutil.NormalizeScheme("example.com", "https")        // "https://example.com"
//	urlutil.NormalizeScheme("http://example.com", "https") // unchanged
//	urlutil.NormalizeScheme("ftp://example.com", "https")  // unchanged
func NormalizeScheme(rawURL, defaultScheme string) string {
	rawURL = strings.TrimSpace(rawURL)
	if strings.Contains(rawURL, "://") {
		return rawURL
	}

	parsed, err := neturl.Parse(rawURL)
	if err == nil && parsed.Scheme != "" && !isPort(parsed.Opaque) {
		return rawURL
	}
	return defaultScheme + "://" + rawURL
}

// isPort reports whether opaque starts with a numeric port, which is how
// net/url reads the tail of "host:port/path" when the host looks like a scheme.
func isPort(opaque string) bool {
	port, _, _ := strings.Cut(opaque, "/")
	if port == "" {
		return false
	}
	for _, r := range port {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsLocalhost reports whether hostname is a loopback name or address.
func IsLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)

	return hostname == "localhost" ||
		hostname == "127.0.0.1" ||
		hostname == "::1" ||
		hostname == "[::1]"
}
