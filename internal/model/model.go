package model

import "time"

// DefaultUTCOffsetHours is the fixed offset of the source schedule's wall
// clock relative to UTC. The timezone label in the time-range text (e.g.
// "CEST") is recognized but never used to derive an offset; any page not
// actually in this offset is silently mis-rendered, which matches the
// behavior this value was lifted from.
const DefaultUTCOffsetHours = 2

// CalendarDate is a plain calendar date as recovered from schedule date text.
// Month is zero-based (January == 0). Immutable once created.
type CalendarDate struct {
	Year  int
	Month int
	Day   int
}

// MonthOf returns the date's month as a time.Month. All conversion between
// the zero-based Month field and Go's 1-based months happens here.
func (d CalendarDate) MonthOf() time.Month {
	return time.Month(d.Month + 1)
}

// WallClockTime is a wall-clock time of day with no date or zone attached.
// Hour may transiently exceed 23 before normalization; Minute is not
// validated against 0-59 (the time parser is deliberately permissive).
type WallClockTime struct {
	Hour   int
	Minute int
}

// TimeRange is a start/end pair of wall-clock times. End is assumed, not
// enforced, to follow Start within the same calendar day; sessions that span
// midnight are outside the contract.
type TimeRange struct {
	Start WallClockTime
	End   WallClockTime
}

// Session is one schedule entry as extracted from a page, before parsing.
type Session struct {
	Title    string
	TimeText string
	Venue    string
}

// DayBlock groups the sessions listed under a single date heading.
type DayBlock struct {
	DateText string
	Sessions []Session
}

// SessionLink is the fully resolved output for one session: the parsed
// date/time pair plus the generated calendar URL.
type SessionLink struct {
	Title string
	Venue string

	Date  CalendarDate
	Times TimeRange

	// StartStamp / EndStamp are compact UTC timestamps (YYYYMMDDTHHMMSSZ).
	StartStamp string
	EndStamp   string

	// URL is the calendar-service deep link for this session.
	URL string
}
