package parse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"schedlink/internal/model"
)

// monthNames is the fixed English month list the schedule pages use.
// Matching is exact and case-sensitive; localized names are out of scope.
var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// DateText parses a schedule date heading into a CalendarDate.
//
// Two shapes are accepted:
//
//	"Friday, June 6, 2025"   (day-of-week, month+day, year)
//	"June 6, 2025"           (month+day, year)
//
// The day-of-week segment, when present, is ignored entirely.
func DateText(text string) (model.CalendarDate, error) {
	segs := strings.Split(strings.TrimSpace(text), ", ")
	if len(segs) != 2 && len(segs) != 3 {
		return model.CalendarDate{}, fmt.Errorf("%w: %q has %d segments", ErrUnexpectedFormat, text, len(segs))
	}

	// The month+day segment is always the one before the year segment.
	monthDay := segs[len(segs)-2]
	yearSeg := segs[len(segs)-1]

	fields := strings.Fields(monthDay)
	if len(fields) != 2 {
		return model.CalendarDate{}, fmt.Errorf("%w: %q is not \"<Month> <Day>\"", ErrUnexpectedFormat, monthDay)
	}

	month, ok := monthIndex(fields[0])
	if !ok {
		return model.CalendarDate{}, fmt.Errorf("%w: %q", ErrUnknownMonth, fields[0])
	}

	day, err := strconv.Atoi(fields[1])
	if err != nil {
		return model.CalendarDate{}, fmt.Errorf("%w: day %q", ErrInvalidNumber, fields[1])
	}
	year, err := strconv.Atoi(strings.TrimSpace(yearSeg))
	if err != nil {
		return model.CalendarDate{}, fmt.Errorf("%w: year %q", ErrInvalidNumber, yearSeg)
	}

	d := model.CalendarDate{Year: year, Month: month, Day: day}
	if !realDate(d) {
		return model.CalendarDate{}, fmt.Errorf("%w: %s %d, %d", ErrInvalidDate, fields[0], day, year)
	}
	return d, nil
}

func monthIndex(name string) (int, bool) {
	for i, m := range monthNames {
		if m == name {
			return i, true
		}
	}
	return 0, false
}

// realDate reports whether d denotes an actual proleptic Gregorian date.
// time.Date normalizes out-of-range components, so a round trip that comes
// back unchanged means the date exists (this catches June 31 and non-leap
// February 29).
func realDate(d model.CalendarDate) bool {
	if d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, d.MonthOf(), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && t.Month() == d.MonthOf() && t.Day() == d.Day
}
