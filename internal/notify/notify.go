// Package notify delivers fire-and-forget desktop notifications through the
// native facility of each platform. There are no click callbacks and no
// delivery receipts; a nil return means the OS accepted the notification.
package notify

import (
	"errors"
	"fmt"
	"strings"
)

const appName = "Porthole"

// Send shows a system notification. title is required, body may be empty.
func Send(title, body string) error {
	if title == "" {
		return errors.New("notify: title is required")
	}
	if err := send(title, body); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

// appleScriptString quotes s as an AppleScript string literal. Only used on
// macOS but kept unconditional so every platform's tests cover it.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
