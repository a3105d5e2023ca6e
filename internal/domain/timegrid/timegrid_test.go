package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/core/internal/domain/entities"
)

func entry(id int, day entities.Weekday, start, end string) entities.TimetableEntry {
	return entities.TimetableEntry{ID: id, Day: day, StartTime: start, EndTime: end, Subject: "S"}
}

func ids(entries []entities.TimetableEntry) []int {
	out := []int{}
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestDefaultSlots(t *testing.T) {
	slots := DefaultSlots()
	require.Len(t, slots, 13)
	assert.Equal(t, TimeSlot("08:00"), slots[0])
	assert.Equal(t, TimeSlot("20:00"), slots[12])
}

func TestHourSlots_Bounds(t *testing.T) {
	assert.Nil(t, HourSlots(10, 9))
	assert.Len(t, HourSlots(-3, 2), 3)
	assert.Equal(t, TimeSlot("23:00"), HourSlots(22, 30)[1])
}

func TestBucket_SpanAndExclusiveEnd(t *testing.T) {
	entries := []entities.TimetableEntry{entry(1, entities.Monday, "09:00", "11:00")}

	assert.Equal(t, []int{1}, ids(Bucket(entries, entities.Monday, "09:00")))
	assert.Equal(t, []int{1}, ids(Bucket(entries, entities.Monday, "10:00")))
	assert.Empty(t, Bucket(entries, entities.Monday, "11:00"))
	assert.Empty(t, Bucket(entries, entities.Tuesday, "10:00"))
}

func TestBucket_SubHourBoundaries(t *testing.T) {
	entries := []entities.TimetableEntry{entry(1, entities.Friday, "09:30", "10:30")}

	assert.Empty(t, Bucket(entries, entities.Friday, "09:00"))
	assert.Equal(t, []int{1}, ids(Bucket(entries, entities.Friday, "10:00")))
	assert.Empty(t, Bucket(entries, entities.Friday, "11:00"))
}

func TestBucket_EmptyInterval(t *testing.T) {
	entries := []entities.TimetableEntry{entry(1, entities.Monday, "10:00", "10:00")}
	for _, slot := range DefaultSlots() {
		assert.Empty(t, Bucket(entries, entities.Monday, slot), slot)
	}
}

func TestBucket_OverlapsKeepSourceOrder(t *testing.T) {
	entries := []entities.TimetableEntry{
		entry(3, entities.Wednesday, "10:00", "12:00"),
		entry(1, entities.Wednesday, "09:00", "11:00"),
		entry(2, entities.Wednesday, "10:00", "10:45"),
	}
	assert.Equal(t, []int{3, 1, 2}, ids(Bucket(entries, entities.Wednesday, "10:00")))
}

func TestBuild_UnionMatchesOverlappingEntries(t *testing.T) {
	entries := []entities.TimetableEntry{
		entry(1, entities.Monday, "09:00", "11:00"),
		entry(2, entities.Tuesday, "07:00", "08:00"),  // ends before first slot
		entry(3, entities.Tuesday, "07:30", "08:30"),  // covers 08:00
		entry(4, entities.Sunday, "20:30", "21:00"),   // after last slot
		entry(5, entities.Thursday, "13:00", "13:00"), // empty
		entry(6, entities.Saturday, "19:00", "23:00"),
	}

	grid := Build(entries, entities.Weekdays, DefaultSlots())
	require.Len(t, grid.Rows, 7)

	seen := map[int]bool{}
	for _, row := range grid.Rows {
		require.Len(t, row.Cells, 13)
		for _, cell := range row.Cells {
			assert.NotNil(t, cell.Entries)
			for _, e := range cell.Entries {
				seen[e.ID] = true
			}
		}
	}

	assert.Equal(t, map[int]bool{1: true, 3: true, 6: true}, seen)
	assert.Equal(t, []int{6}, ids(grid.Cell(entities.Saturday, "20:00")))
	assert.Equal(t, []int{1}, ids(grid.Cell(entities.Monday, "10:00")))
	assert.Nil(t, grid.Cell(entities.Monday, "21:00"))
}
