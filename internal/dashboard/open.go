package dashboard

import (
	"io"

	"github.com/pkg/browser"
)

func init() {
	// The launcher's own output would draw over the alt screen.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// OpenURL opens url in the default browser.
func OpenURL(url string) error {
	return browser.OpenURL(url)
}
