// Package platform wraps the small set of OS-level operations the UI can
// trigger: identifying the host OS, opening links, and relaunching the app.
package platform

import "runtime"

// OSName returns the host operating system as one of "macos", "windows",
// "linux" or "unknown". The UI uses this for platform-specific styling
// (titlebar insets, keyboard shortcut labels).
func OSName() string {
	switch runtime.GOOS {
	case "darwin":
		return "macos"
	case "windows":
		return "windows"
	case "linux":
		return "linux"
	default:
		return "unknown"
	}
}
