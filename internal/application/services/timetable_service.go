package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/studybuddy/core/internal/adapters/calendar"
	"github.com/studybuddy/core/internal/adapters/timetableio"
	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/domain/timegrid"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// TimetableOptions anchors the weekly timetable in real time
type TimetableOptions struct {
	Slots         []timegrid.TimeSlot
	Location      *time.Location
	SemesterStart time.Time
	SemesterWeeks int
}

// TimetableService handles the weekly class timetable
type TimetableService struct {
	repo   ports.TimetableRepository
	opts   TimetableOptions
	now    func() time.Time
	logger *logger.Logger
}

// NewTimetableService creates a new timetable service
func NewTimetableService(repo ports.TimetableRepository, opts TimetableOptions, logger *logger.Logger) *TimetableService {
	if len(opts.Slots) == 0 {
		opts.Slots = timegrid.DefaultSlots()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &TimetableService{
		repo:   repo,
		opts:   opts,
		now:    time.Now,
		logger: logger,
	}
}

// ListEntries returns entries ordered by weekday then start time
func (s *TimetableService) ListEntries(ctx context.Context) ([]*entities.TimetableEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list timetable: %w", err)
	}
	return entries, nil
}

// GetEntry retrieves an entry by ID
func (s *TimetableService) GetEntry(ctx context.Context, id int) (*entities.TimetableEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get timetable entry: %w", err)
	}
	return entry, nil
}

// CreateEntry validates and stores a new class
func (s *TimetableService) CreateEntry(ctx context.Context, req ports.CreateTimetableEntryRequest) (*entities.TimetableEntry, error) {
	entry := &entities.TimetableEntry{
		Day:       entities.Weekday(req.Day),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Subject:   strings.TrimSpace(req.Subject),
		Type:      strings.TrimSpace(req.Type),
		Location:  strings.TrimSpace(req.Location),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create timetable entry: %w", err)
	}

	s.logger.Infow("Timetable entry created", "entry_id", entry.ID, "day", entry.Day, "subject", entry.Subject)

	return entry, nil
}

// UpdateEntry applies a partial update and revalidates the entry
func (s *TimetableService) UpdateEntry(ctx context.Context, id int, req ports.UpdateTimetableEntryRequest) (*entities.TimetableEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get timetable entry: %w", err)
	}

	if req.Day != nil {
		entry.Day = entities.Weekday(*req.Day)
	}
	if req.StartTime != nil {
		entry.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		entry.EndTime = *req.EndTime
	}
	if req.Subject != nil {
		entry.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Type != nil {
		entry.Type = strings.TrimSpace(*req.Type)
	}
	if req.Location != nil {
		entry.Location = strings.TrimSpace(*req.Location)
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update timetable entry: %w", err)
	}

	s.logger.Infow("Timetable entry updated", "entry_id", entry.ID)

	return entry, nil
}

// DeleteEntry deletes one class
func (s *TimetableService) DeleteEntry(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete timetable entry: %w", err)
	}

	s.logger.Infow("Timetable entry deleted", "entry_id", id)

	return nil
}

// DeleteAll clears the timetable and reports how many entries were removed
func (s *TimetableService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete timetable: %w", err)
	}

	s.logger.Infow("Timetable cleared", "deleted", n)

	return n, nil
}

// Grid builds the full week view over the configured hour slots
func (s *TimetableService) Grid(ctx context.Context) (timegrid.Grid, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return timegrid.Grid{}, fmt.Errorf("failed to list timetable: %w", err)
	}

	values := make([]entities.TimetableEntry, 0, len(entries))
	for _, e := range entries {
		values = append(values, *e)
	}
	return timegrid.Build(values, entities.Weekdays, s.opts.Slots), nil
}

// Import parses a CSV or YAML file and stores every entry in one
// transaction. Nothing is stored when any row is invalid.
func (s *TimetableService) Import(ctx context.Context, filename string, data []byte) (int, error) {
	format, err := timetableio.DetectFormat(filename)
	if err != nil {
		return 0, err
	}

	entries, err := timetableio.Parse(format, data)
	if err != nil {
		return 0, err
	}

	if err := s.repo.CreateBatch(ctx, entries); err != nil {
		return 0, fmt.Errorf("failed to import timetable: %w", err)
	}

	s.logger.Infow("Timetable imported", "file", filename, "entries", len(entries))

	return len(entries), nil
}

// Export writes the timetable as CSV or YAML
func (s *TimetableService) Export(ctx context.Context, format timetableio.Format, w io.Writer) error {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list timetable: %w", err)
	}
	return timetableio.Write(w, format, entries)
}

// ExportICS renders the timetable as an iCalendar document with weekly
// recurring events
func (s *TimetableService) ExportICS(ctx context.Context) ([]byte, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list timetable: %w", err)
	}

	data, err := calendar.ExportICS(entries, calendar.Options{
		Location:      s.opts.Location,
		SemesterStart: s.opts.SemesterStart,
		SemesterWeeks: s.opts.SemesterWeeks,
		Now:           s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export calendar: %w", err)
	}
	return data, nil
}

// Upcoming lists concrete class meetings over the next days days
func (s *TimetableService) Upcoming(ctx context.Context, days int) ([]ports.Occurrence, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list timetable: %w", err)
	}
	return calendar.Upcoming(entries, s.now(), days, s.opts.Location)
}

// ClassesOn returns the classes held on the weekday of t in the configured
// timezone, sorted by start time
func (s *TimetableService) ClassesOn(ctx context.Context, t time.Time) ([]*entities.TimetableEntry, error) {
	day := entities.WeekdayOf(t.In(s.opts.Location).Weekday())
	entries, err := s.repo.ListByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return entries, nil
}

// Location is the timezone the timetable is read in
func (s *TimetableService) Location() *time.Location {
	return s.opts.Location
}

// SemesterWeek returns the 1-based teaching week containing t, or 0 when no
// semester start is configured
func (s *TimetableService) SemesterWeek(t time.Time) int {
	return SemesterWeek(s.opts.SemesterStart, t, s.opts.Location)
}

// SemesterWeek computes max(1, floor(days/7)+1) for the whole calendar
// days between start and t
func SemesterWeek(start, t time.Time, loc *time.Location) int {
	if start.IsZero() {
		return 0
	}
	if loc == nil {
		loc = time.Local
	}
	y1, m1, d1 := start.In(loc).Date()
	y2, m2, d2 := t.In(loc).Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)

	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 1
	}
	week := days/7 + 1
	if week < 1 {
		return 1
	}
	return week
}
