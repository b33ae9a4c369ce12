// Package scan extracts schedule text (date headings, session titles, time
// ranges, venues) from schedule page markup. Parsing of the extracted text
// is someone else's job (internal/parse); this package only finds strings.
package scan

import (
	"context"

	"schedlink/internal/model"
)

// Selectors names the CSS classes that identify schedule markup. All fields
// are class names, not full CSS selectors.
type Selectors struct {
	// Day marks the container for one date heading plus its sessions.
	Day string
	// Date marks the element holding the date text inside a day container.
	Date string
	// Session marks one session entry inside a day container.
	Session string
	// Title, Time and Venue mark the respective text elements inside a
	// session entry.
	Title string
	Time  string
	Venue string
}

// DefaultSelectors matches the markup the scanner was originally written for.
func DefaultSelectors() Selectors {
	return Selectors{
		Day:     "schedule-day",
		Date:    "schedule-date",
		Session: "session",
		Title:   "session-title",
		Time:    "session-time",
		Venue:   "session-venue",
	}
}

// Source provides the extracted day blocks for one schedule page. The static
// HTML walker and the headless-browser scanner both satisfy it, so the
// pipeline never knows how a page was obtained.
type Source interface {
	Blocks(ctx context.Context) ([]model.DayBlock, error)
}
