// Package urlutil validates the URLs urlview hands to viewers and the local
// endpoints it signals.
//
// # Usage
//
// Validate a URL before dispatching it:
//
//	if err := urlutil.Validate(target); err != nil {
//		return fmt.Errorf("invalid URL: %w", err)
//	}
//
// Add a scheme to bare host input from the command line:
//
//	target = urlutil.NormalizeScheme("example.com/problem/42", "https")
//	// https://example.com/problem/42
//
// Check that a signaling endpoint stays on the local machine:
//
//	if err := urlutil.ValidateLocalEndpoint(cfg.ShowURL.Endpoint); err != nil {
//		return err
//	}
//
// # Validation Rules
//
//   - URL must not be empty or only whitespace
//   - URL must use http:// or https:// (rejects file:, javascript:, data: and friends)
//   - URL must have a host
//   - URL must not exceed 2048 characters
//   - URL must be parseable by net/url.Parse
package urlutil
