package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// vtimezone describes every offset loc observes between from and to, so
// TZID references resolve without the client's own zone database.
func vtimezone(loc *time.Location, from, to time.Time) *ical.VTimezone {
	tz := ical.NewTimezone(loc.String())
	t := from.In(loc)
	for {
		start, end := t.ZoneBounds()
		tz.Components = append(tz.Components, observance(t, start))
		if end.IsZero() || !end.Before(to) {
			return tz
		}
		t = end.In(loc)
	}
}

// observance is the STANDARD or DAYLIGHT block for the zone in effect at t,
// which began at start. A zero start means the zone has always applied.
func observance(t, start time.Time) ical.Component {
	name, offset := t.Zone()
	before, dtstart := offset, "19700101T000000"
	if !start.IsZero() {
		_, before = start.Add(-time.Second).In(t.Location()).Zone()
		dtstart = start.In(time.FixedZone("", before)).Format(icalZoneLayout)
	}

	var base ical.ComponentBase
	base.SetProperty(ical.ComponentProperty(ical.PropertyDtstart), dtstart)
	base.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetfrom), utcOffset(before))
	base.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetto), utcOffset(offset))
	base.SetProperty(ical.ComponentProperty(ical.PropertyTzname), name)

	if t.IsDST() {
		return &ical.Daylight{ComponentBase: base}
	}
	return &ical.Standard{ComponentBase: base}
}

// utcOffset formats seconds east of UTC as +HHMM, adding seconds only when
// the offset has them
func utcOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	h, m, s := seconds/3600, seconds%3600/60, seconds%60
	if s != 0 {
		return fmt.Sprintf("%c%02d%02d%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d%02d", sign, h, m)
}
