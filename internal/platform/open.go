package platform

import (
	"fmt"

	"github.com/pkg/browser"
)

// OpenURL opens url with the OS default handler (browser, mail client, ...).
// No validation is performed beyond what the OS shell enforces.
func OpenURL(url string) error {
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("open link: %w", err)
	}
	return nil
}
