package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/ports"
)

// DashboardService assembles the landing page summary
type DashboardService struct {
	todos     *TodoService
	folders   ports.FolderRepository
	timetable *TimetableService
	now       func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(todos *TodoService, folders ports.FolderRepository, timetable *TimetableService) *DashboardService {
	return &DashboardService{
		todos:     todos,
		folders:   folders,
		timetable: timetable,
		now:       time.Now,
	}
}

// GetDashboard summarises open todos, folders and today's classes
func (s *DashboardService) GetDashboard(ctx context.Context) (*ports.Dashboard, error) {
	now := s.now().In(s.timetable.Location())

	open := false
	active, err := s.todos.ListTodos(ctx, ports.TodoFilter{Completed: &open})
	if err != nil {
		return nil, err
	}

	pinned := []*entities.Todo{}
	due := []*entities.Todo{}
	for _, t := range active {
		if t.Pinned {
			pinned = append(pinned, t)
		}
		if t.IsDueOn(now) {
			due = append(due, t)
		}
	}

	folderCount, err := s.folders.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count folders: %w", err)
	}

	classes, err := s.timetable.ClassesOn(ctx, now)
	if err != nil {
		return nil, err
	}

	return &ports.Dashboard{
		ActiveTodos:  len(active),
		PinnedTodos:  pinned,
		DueToday:     due,
		FolderCount:  folderCount,
		Today:        entities.WeekdayOf(now.Weekday()),
		TodayClasses: classes,
		SemesterWeek: s.timetable.SemesterWeek(now),
		GeneratedAt:  now,
	}, nil
}
