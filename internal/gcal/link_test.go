package gcal

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink_Template(t *testing.T) {
	got := Link(Event{
		Title:      "Opening Keynote",
		StartStamp: "20250606T070000Z",
		EndStamp:   "20250606T083000Z",
		PageURL:    "https://example.com/schedule",
		Venue:      "Main Hall",
	})

	assert.True(t, strings.HasPrefix(got, "https://calendar.google.com/calendar/render?action=TEMPLATE"), got)
	// The dates pair must keep its literal slash for the calendar service.
	assert.Contains(t, got, "dates=20250606T070000Z/20250606T083000Z")
	assert.Contains(t, got, "text=Opening+Keynote")
	assert.Contains(t, got, "location=Main+Hall")
	assert.Contains(t, got, "details=More+info%3A+https%3A%2F%2Fexample.com%2Fschedule")
}

func TestLink_ParsesBackAsURL(t *testing.T) {
	got := Link(Event{
		Title:      "Q&A: What's next?",
		StartStamp: "20250606T120000Z",
		EndStamp:   "20250606T130000Z",
		PageURL:    "https://example.com/s?id=1&x=2",
		Venue:      "Room B/2",
	})

	u, err := url.Parse(got)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Q&A: What's next?", q.Get("text"))
	assert.Equal(t, "20250606T120000Z/20250606T130000Z", q.Get("dates"))
	assert.Equal(t, "More info: https://example.com/s?id=1&x=2", q.Get("details"))
	assert.Equal(t, "Room B/2", q.Get("location"))
}

func TestLink_EmptyVenue(t *testing.T) {
	got := Link(Event{
		Title:      "Break",
		StartStamp: "20250606T100000Z",
		EndStamp:   "20250606T110000Z",
		PageURL:    "https://example.com/schedule",
	})
	assert.True(t, strings.HasSuffix(got, "&location="), got)
}
