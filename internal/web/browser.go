package web

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/browser"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

// OpenBrowser opens url in the default browser after delay, unless ctx is
// cancelled first. It returns immediately.
func OpenBrowser(ctx context.Context, url string, delay time.Duration) {
	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := openURL(url); err != nil {
			slog.Warn("could not open browser", "url", url, "error", err)
		}
	}()
}
