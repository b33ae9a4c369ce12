// Package stamp renders parsed schedule times as the compact UTC timestamps
// the calendar link template expects.
package stamp

import (
	"time"

	"schedlink/internal/model"
)

// Layout is the compact UTC timestamp form, e.g. "20250606T080000Z".
// Seconds are always zero; the schedule text has minute granularity.
const Layout = "20060102T150405Z"

// UTCTime converts a wall-clock reading in a fixed-offset zone into the
// equivalent UTC instant. An hour that goes negative or past 23 after the
// offset subtraction (offset underflow, or an end time the parser wrapped
// past midnight) is normalized into a date carry rather than emitted as an
// out-of-range field, so early-morning sessions land on the previous UTC day
// instead of producing a timestamp no calendar service would accept.
func UTCTime(d model.CalendarDate, t model.WallClockTime, offsetHours int) time.Time {
	return time.Date(d.Year, d.MonthOf(), d.Day, t.Hour-offsetHours, t.Minute, 0, 0, time.UTC)
}

// UTCStamp renders the UTC instant for (d, t, offsetHours) as YYYYMMDDTHHMMSSZ.
func UTCStamp(d model.CalendarDate, t model.WallClockTime, offsetHours int) string {
	return UTCTime(d, t, offsetHours).Format(Layout)
}

// ParseStamp is the inverse of UTCStamp, used where a stored stamp has to be
// turned back into a time.Time (e.g. the ICS export).
func ParseStamp(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}
