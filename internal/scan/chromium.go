package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	appLog "schedlink/internal/log"
	"schedlink/internal/model"
)

// Default parameters for headless scanning.
const (
	DefaultWaitSelector = ".schedule-day"
	DefaultTimeoutSec   = 30
)

// ChromiumSource scans a schedule page that builds its DOM with JavaScript:
// it drives a headless Chromium instance, waits for the schedule markup to
// appear, snapshots the rendered document and feeds it to the same extractor
// the static scanner uses.
type ChromiumSource struct {
	// URL of the schedule page.
	URL string

	// WaitSelector is a CSS selector that must become visible before the
	// DOM is considered rendered. If empty, DefaultWaitSelector is used.
	WaitSelector string

	// Timeout bounds the whole navigate+wait+snapshot sequence. If zero,
	// DefaultTimeoutSec is used.
	Timeout time.Duration

	Sel Selectors
}

// Blocks implements Source.
func (c *ChromiumSource) Blocks(parentCtx context.Context) ([]model.DayBlock, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("scan: URL is required")
	}
	wait := c.WaitSelector
	if wait == "" {
		wait = DefaultWaitSelector
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeoutSec * time.Second
	}

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, timeout)
	defer timeoutCancel()

	var rendered string
	tasks := chromedp.Tasks{
		chromedp.Navigate(c.URL),
		chromedp.WaitVisible(wait, chromedp.ByQuery),
		// Small extra delay so late mutations settle before the snapshot.
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.OuterHTML("html", &rendered, chromedp.ByQuery),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return nil, fmt.Errorf("scan: chromedp run failed: %w", err)
	}

	appLog.Debug("headless snapshot captured", "url", c.URL, "bytes", len(rendered))
	return ParseDocument([]byte(rendered), c.Sel)
}
