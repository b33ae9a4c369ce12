// Package gcal builds Google Calendar "render" deep links for parsed
// schedule sessions.
package gcal

import "net/url"

const renderEndpoint = "https://calendar.google.com/calendar/render"

// Event holds everything the calendar template needs for one session.
type Event struct {
	// Title is the session title, shown as the event name.
	Title string
	// StartStamp / EndStamp are compact UTC timestamps (stamp.Layout).
	StartStamp string
	EndStamp   string
	// PageURL is the schedule page the session was extracted from; it is
	// embedded in the event details.
	PageURL string
	// Venue is the location label, possibly empty.
	Venue string
}

// Link renders the calendar deep link for ev.
//
// The query is assembled by hand in the template's fixed parameter order,
// with the dates value kept as a literal "<start>/<end>" pair; url.Values
// would percent-encode the slash and reorder the parameters.
func Link(ev Event) string {
	return renderEndpoint +
		"?action=TEMPLATE" +
		"&text=" + url.QueryEscape(ev.Title) +
		"&dates=" + ev.StartStamp + "/" + ev.EndStamp +
		"&details=" + url.QueryEscape("More info: "+ev.PageURL) +
		"&location=" + url.QueryEscape(ev.Venue)
}
