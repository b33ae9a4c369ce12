package parse

import (
	"fmt"
	"strings"
	"unicode"

	"schedlink/internal/model"
)

// defaultDurationMinutes is applied when the text carries no end time.
const defaultDurationMinutes = 60

// TimeRangeText parses session time text into a TimeRange.
//
// Grammar, scanned token by token so each edge case stays enumerable:
//
//	range  = clock [ sep clock ] [ label ]
//	clock  = digit{1,2} ":" digit{2}
//	sep    = "-" | "–"          (spaces around it optional)
//	label  = letter+            (e.g. "CEST"; recognized, then discarded)
//
// When the end clock is absent, the end is the start plus 60 minutes, with
// the hour wrapped modulo 24. The wrap deliberately does not carry into the
// date: the owning CalendarDate stays untouched (see UTCStamp for where
// out-of-range hours are eventually normalized).
//
// Minutes are not range-checked; "10:75" passes through as given. This is a
// permissive best-effort contract, not a validator.
func TimeRangeText(text string) (model.TimeRange, error) {
	sc := scanner{src: strings.TrimSpace(text)}

	start, ok := sc.clock()
	if !ok {
		return model.TimeRange{}, fmt.Errorf("%w: %q", ErrUnparseableTime, text)
	}

	var end model.WallClockTime
	haveEnd := false

	sc.spaces()
	if sc.sep() {
		sc.spaces()
		end, ok = sc.clock()
		if !ok {
			return model.TimeRange{}, fmt.Errorf("%w: %q has a separator but no end time", ErrUnparseableTime, text)
		}
		haveEnd = true
		sc.spaces()
	}

	sc.label()
	sc.spaces()
	if !sc.done() {
		return model.TimeRange{}, fmt.Errorf("%w: trailing %q in %q", ErrUnparseableTime, sc.rest(), text)
	}

	if !haveEnd {
		end = model.WallClockTime{
			Hour:   start.Hour + defaultDurationMinutes/60,
			Minute: start.Minute,
		}
		if end.Hour >= 24 {
			end.Hour %= 24
		}
	}

	return model.TimeRange{Start: start, End: end}, nil
}

// scanner is a minimal cursor over the time-range text.
type scanner struct {
	src string
	pos int
}

func (s *scanner) done() bool { return s.pos >= len(s.src) }

func (s *scanner) rest() string { return s.src[s.pos:] }

func (s *scanner) peek() rune {
	if s.done() {
		return 0
	}
	r := []rune(s.src[s.pos:])
	return r[0]
}

func (s *scanner) spaces() {
	for !s.done() && s.src[s.pos] == ' ' {
		s.pos++
	}
}

// clock consumes digit{1,2} ":" digit{2}.
func (s *scanner) clock() (model.WallClockTime, bool) {
	hour, n := s.digits(2)
	if n == 0 {
		return model.WallClockTime{}, false
	}
	if s.done() || s.src[s.pos] != ':' {
		return model.WallClockTime{}, false
	}
	s.pos++
	minute, n := s.digits(2)
	if n != 2 {
		return model.WallClockTime{}, false
	}
	return model.WallClockTime{Hour: hour, Minute: minute}, true
}

// digits consumes up to max ASCII digits and returns their value and count.
func (s *scanner) digits(max int) (int, int) {
	v, n := 0, 0
	for n < max && !s.done() {
		c := s.src[s.pos]
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + int(c-'0')
		s.pos++
		n++
	}
	return v, n
}

// sep consumes a range separator: hyphen or en-dash.
func (s *scanner) sep() bool {
	switch s.peek() {
	case '-':
		s.pos++
		return true
	case '–': // en-dash, three bytes in UTF-8
		s.pos += 3
		return true
	}
	return false
}

// label consumes a run of letters (a timezone label such as "CEST").
func (s *scanner) label() {
	for !s.done() {
		r := s.peek()
		if !unicode.IsLetter(r) {
			return
		}
		s.pos += len(string(r))
	}
}
