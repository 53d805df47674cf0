//go:build !darwin && !linux && !windows

package notify

import "errors"

func send(title, body string) error {
	return errors.New("desktop notifications are not supported on this platform")
}
