//go:build windows

package notify

import (
	"fmt"

	"github.com/go-toast/toast"
)

// send posts a toast to the Windows notification center.
func send(title, body string) error {
	n := toast.Notification{
		AppID:   appName,
		Title:   title,
		Message: body,
	}
	if err := n.Push(); err != nil {
		return fmt.Errorf("toast: %w", err)
	}
	return nil
}
