// Package ics renders parsed schedule sessions as an iCalendar feed, for
// clients that prefer a subscription over per-session deep links.
package ics

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "schedlink/internal/log"
	"schedlink/internal/model"
	"schedlink/internal/stamp"
)

const productID = "-//schedlink//schedule export//EN"

// Feed serializes session links into a VCALENDAR document, one VEVENT per
// session. Sessions whose stamps fail to round-trip (which would indicate a
// bug upstream, not bad input) are logged and skipped.
func Feed(links []model.SessionLink) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	now := time.Now().UTC()

	for _, l := range links {
		start, err := stamp.ParseStamp(l.StartStamp)
		if err != nil {
			appLog.Error("ics export: bad start stamp", err, "title", l.Title, "stamp", l.StartStamp)
			continue
		}
		end, err := stamp.ParseStamp(l.EndStamp)
		if err != nil {
			appLog.Error("ics export: bad end stamp", err, "title", l.Title, "stamp", l.EndStamp)
			continue
		}

		ev := cal.AddEvent(eventUID(l))
		ev.SetDtStampTime(now)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(l.Title)
		if l.Venue != "" {
			ev.SetLocation(l.Venue)
		}
		if l.URL != "" {
			ev.SetDescription("Add to calendar: " + l.URL)
		}
	}

	return cal.Serialize()
}

// eventUID derives a stable UID from the session's stamp and title, so a
// re-scan of an unchanged page produces identical UIDs.
func eventUID(l model.SessionLink) string {
	sum := sha256.Sum256([]byte(l.StartStamp + "|" + l.Title))
	return hex.EncodeToString(sum[:8]) + "@schedlink"
}
