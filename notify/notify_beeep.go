package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"
)

// notifyFunc and alertFunc are swapped in tests so nothing is shown.
var (
	notifyFunc = func(title, message string) error {
		return beeep.Notify(title, message, "")
	}
	alertFunc = func(title, message string) error {
		return beeep.Alert(title, message, "")
	}
)

// beeepNotifier implements Notifier using the cross-platform beeep library.
type beeepNotifier struct {
	config Config
}

func newBeeepNotifier(config Config) *beeepNotifier {
	return &beeepNotifier{
		config: config,
	}
}

// Send shows the notification, giving up after the configured timeout.
func (n *beeepNotifier) Send(ctx context.Context, notification Notification) error {
	ctx, cancel := context.WithTimeout(ctx, n.config.Timeout)
	defer cancel()

	title := notification.Title
	if n.config.AppName != "" {
		title = n.config.AppName + ": " + title
	}

	message := notification.Message
	if notification.URL != "" && !strings.Contains(message, notification.URL) {
		if message != "" {
			message += "\n"
		}
		message += notification.URL
	}

	send := notifyFunc
	if notification.Severity == SeverityCritical {
		send = alertFunc
	}
	done := make(chan error, 1)
	go func() {
		done <- send(title, message)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	}
}

// IsAvailable returns true since beeep handles platform detection internally.
func (n *beeepNotifier) IsAvailable() bool {
	return true
}

// Close is a no-op for beeep.
func (n *beeepNotifier) Close() error {
	return nil
}
