// Package calendar turns weekly timetable entries into concrete dated
// occurrences and iCalendar documents.
package calendar

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/ports"
)

const (
	productID      = "-//StudyBuddy//Timetable//EN"
	icalUTCLayout  = "20060102T150405Z"
	icalZoneLayout = "20060102T150405"
)

var rruleWeekdays = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

// Options controls how the weekly timetable is anchored in real time
type Options struct {
	Location      *time.Location
	SemesterStart time.Time
	SemesterWeeks int
	Now           time.Time
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// anchor is the date recurrences start from: the semester start, or the
// Monday of the current week when no start is configured.
func (o Options) anchor() time.Time {
	loc := o.location()
	if !o.SemesterStart.IsZero() {
		return midnight(o.SemesterStart.In(loc))
	}
	now := o.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := midnight(now.In(loc))
	offset := entities.WeekdayOf(today.Weekday()).Index()
	return today.AddDate(0, 0, -offset)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// clock returns the time of day on date for an HH:MM string
func clock(date time.Time, hhmm string) (time.Time, error) {
	if !entities.ValidClockTime(hhmm) {
		return time.Time{}, entities.ErrInvalidTimeFormat
	}
	hour, _ := strconv.Atoi(hhmm[:2])
	minute, _ := strconv.Atoi(hhmm[3:])
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, date.Location()), nil
}

// firstOn returns the first date on or after from that falls on day
func firstOn(from time.Time, day entities.Weekday) time.Time {
	delta := (int(day.TimeWeekday()) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, delta)
}

func weeklyRule(entry *entities.TimetableEntry, dtstart time.Time, count int) (*rrule.RRule, error) {
	idx := entry.Day.Index()
	if idx < 0 {
		return nil, entities.ErrInvalidWeekday
	}
	return rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   dtstart,
		Byweekday: []rrule.Weekday{rruleWeekdays[idx]},
		Count:     count,
	})
}

// ExportICS renders the timetable as a calendar with one weekly recurring
// event per entry, repeated for the length of the semester.
func ExportICS(entries []*entities.TimetableEntry, opts Options) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName("StudyBuddy timetable")
	cal.SetXWRTimezone(opts.location().String())

	anchor := opts.anchor()
	stamp := opts.Now
	if stamp.IsZero() {
		stamp = time.Now()
	}
	if loc := opts.location(); zoned(loc) && len(entries) > 0 {
		weeks := max(opts.SemesterWeeks, 52)
		cal.AddVTimezone(vtimezone(loc, anchor.AddDate(-1, 0, 0), anchor.AddDate(0, 0, 7*weeks+7)))
	}

	for _, entry := range entries {
		date := firstOn(anchor, entry.Day)
		start, err := clock(date, entry.StartTime)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", entry.ID, err)
		}
		end, err := clock(date, entry.EndTime)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", entry.ID, err)
		}

		rule, err := weeklyRule(entry, start, opts.SemesterWeeks)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", entry.ID, err)
		}

		event := cal.AddEvent(fmt.Sprintf("timetable-%d@studybuddy", entry.ID))
		event.SetDtStampTime(stamp)
		setTime(event, ical.ComponentPropertyDtStart, start)
		setTime(event, ical.ComponentPropertyDtEnd, end)
		event.SetSummary(summary(entry))
		if entry.Location != "" {
			event.SetLocation(entry.Location)
		}
		if entry.Type != "" {
			event.SetDescription(entry.Type)
		}
		event.AddRrule(rule.OrigOptions.RRuleString())
	}

	return []byte(cal.Serialize()), nil
}

// zoned reports whether times in loc are written with a TZID. UTC needs no
// zone and Local has no portable name, so both are written in UTC.
func zoned(loc *time.Location) bool {
	name := loc.String()
	return name != "UTC" && name != "Local"
}

// setTime writes zoned times with a TZID matching the calendar's VTIMEZONE
// and everything else in UTC
func setTime(event *ical.VEvent, prop ical.ComponentProperty, t time.Time) {
	if !zoned(t.Location()) {
		event.SetProperty(prop, t.UTC().Format(icalUTCLayout))
		return
	}
	event.SetProperty(prop, t.Format(icalZoneLayout), ical.WithTZID(t.Location().String()))
}

func summary(entry *entities.TimetableEntry) string {
	if entry.Type == "" {
		return entry.Subject
	}
	return fmt.Sprintf("%s (%s)", entry.Subject, entry.Type)
}

// Upcoming expands the weekly entries into dated occurrences that have not
// ended by from and start within the next days days.
func Upcoming(entries []*entities.TimetableEntry, from time.Time, days int, loc *time.Location) ([]ports.Occurrence, error) {
	if loc == nil {
		loc = time.Local
	}
	from = from.In(loc)
	windowStart := midnight(from)
	windowEnd := windowStart.AddDate(0, 0, days)

	occurrences := []ports.Occurrence{}
	for _, entry := range entries {
		dtstart, err := clock(windowStart, entry.StartTime)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", entry.ID, err)
		}
		dtend, err := clock(windowStart, entry.EndTime)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", entry.ID, err)
		}
		duration := dtend.Sub(dtstart)

		rule, err := weeklyRule(entry, dtstart, 0)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", entry.ID, err)
		}

		for _, start := range rule.Between(windowStart, windowEnd, true) {
			end := start.Add(duration)
			if !end.After(from) || !start.Before(windowEnd) {
				continue
			}
			occurrences = append(occurrences, ports.Occurrence{
				EntryID:  entry.ID,
				Subject:  entry.Subject,
				Type:     entry.Type,
				Location: entry.Location,
				Start:    start,
				End:      end,
			})
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Start.Before(occurrences[j].Start)
	})
	return occurrences, nil
}
