//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

// send posts to Notification Center via osascript. The app must be running
// from a signed bundle for the notification to carry the app icon; delivery
// works either way.
func send(title, body string) error {
	script := fmt.Sprintf("display notification %s with title %s",
		appleScriptString(body), appleScriptString(title))

	if out, err := exec.Command("osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %v: %s", err, out)
	}
	return nil
}
