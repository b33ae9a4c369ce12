package parse

import "errors"

// Parse failures are per-item and recoverable: the caller logs, skips the
// session or day block, and keeps going. Callers match with errors.Is.
var (
	// ErrUnexpectedFormat means the date text did not have the expected
	// comma-separated shape.
	ErrUnexpectedFormat = errors.New("unexpected date text format")

	// ErrUnknownMonth means the month name did not match any English month.
	ErrUnknownMonth = errors.New("unknown month name")

	// ErrInvalidNumber means a day or year segment was not an integer.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidDate means the parsed numbers do not form a real calendar
	// date (e.g. June 31, or February 29 outside a leap year).
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrUnparseableTime means the time-range text did not match the
	// H:MM [– H:MM] [label] grammar.
	ErrUnparseableTime = errors.New("unparseable time range")
)
