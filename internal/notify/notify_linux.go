//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// send posts to org.freedesktop.Notifications on the session bus, which every
// mainstream desktop environment implements.
func send(title, body string) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		appName,                   // app_name
		uint32(0),                 // replaces_id: always a fresh notification
		"",                        // app_icon
		title,                     // summary
		body,                      // body
		[]string{},                // actions
		map[string]dbus.Variant{}, // hints
		int32(-1),                 // expire_timeout: server default
	)
	if call.Err != nil {
		return fmt.Errorf("dbus notify: %w", call.Err)
	}
	return nil
}
