package ics

import (
	"strings"
	"testing"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedlink/internal/model"
)

func sampleLink() model.SessionLink {
	return model.SessionLink{
		Title:      "Opening Keynote",
		Venue:      "Main Hall",
		Date:       model.CalendarDate{Year: 2025, Month: 5, Day: 6},
		StartStamp: "20250606T070000Z",
		EndStamp:   "20250606T083000Z",
		URL:        "https://calendar.google.com/calendar/render?action=TEMPLATE&text=Opening+Keynote",
	}
}

func TestFeed(t *testing.T) {
	out := Feed([]model.SessionLink{sampleLink()})

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "DTSTART:20250606T070000Z")
	assert.Contains(t, out, "DTEND:20250606T083000Z")
	assert.Contains(t, out, "SUMMARY:Opening Keynote")
	assert.Contains(t, out, "LOCATION:Main Hall")

	// The feed must parse back with the same library.
	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)
}

func TestFeed_StableUIDs(t *testing.T) {
	a := Feed([]model.SessionLink{sampleLink()})
	b := Feed([]model.SessionLink{sampleLink()})

	uid := func(s string) string {
		for _, line := range strings.Split(s, "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}
	require.NotEmpty(t, uid(a))
	assert.Equal(t, uid(a), uid(b))
}

func TestFeed_SkipsCorruptStamps(t *testing.T) {
	bad := sampleLink()
	bad.StartStamp = "garbage"

	out := Feed([]model.SessionLink{bad, sampleLink()})

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 1)
}

func TestFeed_Empty(t *testing.T) {
	out := Feed(nil)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "END:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
