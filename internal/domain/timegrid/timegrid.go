// Package timegrid lays timetable entries out on a weekday × hour grid.
//
// Times are zero-padded 24-hour "HH:MM" strings and are compared
// lexicographically, which orders them the same way as their numeric value.
package timegrid

import (
	"fmt"

	"github.com/studybuddy/core/internal/domain/entities"
)

// TimeSlot is an hour mark heading one grid column.
type TimeSlot string

const (
	DefaultFirstHour = 8
	DefaultLastHour  = 20
)

// HourSlots returns one slot per hour from first to last inclusive.
func HourSlots(first, last int) []TimeSlot {
	if first < 0 {
		first = 0
	}
	if last > 23 {
		last = 23
	}
	if last < first {
		return nil
	}
	slots := make([]TimeSlot, 0, last-first+1)
	for h := first; h <= last; h++ {
		slots = append(slots, TimeSlot(fmt.Sprintf("%02d:00", h)))
	}
	return slots
}

// DefaultSlots is 08:00 through 20:00.
func DefaultSlots() []TimeSlot {
	return HourSlots(DefaultFirstHour, DefaultLastHour)
}

// Contains reports whether entry occupies (day, slot): same day and
// StartTime <= slot < EndTime. An entry whose start equals its end occupies
// nothing.
func Contains(entry entities.TimetableEntry, day entities.Weekday, slot TimeSlot) bool {
	t := string(slot)
	return entry.Day == day && entry.StartTime <= t && t < entry.EndTime
}

// Bucket returns the entries active at (day, slot) in source order.
// Overlapping entries are all returned.
func Bucket(entries []entities.TimetableEntry, day entities.Weekday, slot TimeSlot) []entities.TimetableEntry {
	var out []entities.TimetableEntry
	for _, e := range entries {
		if Contains(e, day, slot) {
			out = append(out, e)
		}
	}
	return out
}

// Cell is one (day, slot) position of the grid.
type Cell struct {
	Slot    TimeSlot                  `json:"slot"`
	Entries []entities.TimetableEntry `json:"entries"`
}

// Row holds every cell for one day.
type Row struct {
	Day   entities.Weekday `json:"day"`
	Cells []Cell           `json:"cells"`
}

// Grid is the rendered week.
type Grid struct {
	Slots []TimeSlot `json:"slots"`
	Rows  []Row      `json:"rows"`
}

// Build computes every cell of days × slots. A multi-hour entry is repeated
// in full in each cell it covers.
func Build(entries []entities.TimetableEntry, days []entities.Weekday, slots []TimeSlot) Grid {
	grid := Grid{Slots: slots, Rows: make([]Row, 0, len(days))}
	for _, day := range days {
		row := Row{Day: day, Cells: make([]Cell, 0, len(slots))}
		for _, slot := range slots {
			cell := Bucket(entries, day, slot)
			if cell == nil {
				cell = []entities.TimetableEntry{}
			}
			row.Cells = append(row.Cells, Cell{Slot: slot, Entries: cell})
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// Cell returns the entries at (day, slot), or nil when the grid does not
// contain that position.
func (g Grid) Cell(day entities.Weekday, slot TimeSlot) []entities.TimetableEntry {
	for _, row := range g.Rows {
		if row.Day != day {
			continue
		}
		for _, c := range row.Cells {
			if c.Slot == slot {
				return c.Entries
			}
		}
	}
	return nil
}
