// Package notify sends desktop notifications, used when no viewer could open
// a URL so the user still learns about it.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Notification represents a notification to be displayed.
type Notification struct {
	// Title is the notification title
	Title string

	// Message is the notification body
	Message string

	// Severity indicates the notification severity. SeverityCritical is
	// shown as an alert with a sound.
	Severity string

	// URL the notification is about (optional). It is appended to Message
	// when Message does not already mention it.
	URL string
}

// Severity levels.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Notifier is the interface for desktop notification systems.
type Notifier interface {
	// Send displays a notification.
	Send(ctx context.Context, notification Notification) error

	// IsAvailable returns true if notifications can be shown.
	IsAvailable() bool

	// Close cleans up notification system resources.
	Close() error
}

// Config contains notification system configuration.
type Config struct {
	// AppName is the application name shown in notifications
	AppName string

	// Timeout for notification operations
	Timeout time.Duration
}

// DefaultConfig returns default notification configuration.
func DefaultConfig() Config {
	return Config{
		AppName: "urlview",
		Timeout: 5 * time.Second,
	}
}

// New creates a desktop notifier.
func New(config Config) (Notifier, error) {
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	return newBeeepNotifier(config), nil
}

// Unhandled builds the notification shown when every viewer declined url.
func Unhandled(url string) Notification {
	return Notification{
		Title:    "Could not open URL",
		Message:  fmt.Sprintf("No viewer could open %s", url),
		Severity: SeverityWarning,
		URL:      url,
	}
}

var (
	ErrNotificationFailed = errors.New("failed to send notification")
	ErrTimeout            = errors.New("notification timeout")
)
