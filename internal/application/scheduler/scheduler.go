// Package scheduler runs the recurring background jobs: the morning agenda
// log and the completed todo retention purge.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/studybuddy/core/internal/application/services"
	"github.com/studybuddy/core/internal/infrastructure/config"
	"github.com/studybuddy/core/internal/infrastructure/logger"
)

const jobTimeout = time.Minute

// Scheduler wraps a cron runner with the application's jobs registered
type Scheduler struct {
	cron      *cron.Cron
	timetable *services.TimetableService
	todos     *services.TodoService
	retention time.Duration
	logger    *logger.Logger
}

// New registers the agenda and retention jobs. An empty spec disables the
// corresponding job.
func New(
	cfg config.SchedulerConfig,
	timetable *services.TimetableService,
	todos *services.TodoService,
	log *logger.Logger,
) (*Scheduler, error) {
	log = log.WithComponent("scheduler")

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(timetable.Location()),
			cron.WithLogger(cronLogger{log}),
			cron.WithChain(cron.Recover(cronLogger{log}), cron.SkipIfStillRunning(cronLogger{log})),
		),
		timetable: timetable,
		todos:     todos,
		retention: cfg.CompletedTodoRetention,
		logger:    log,
	}

	if err := s.add("agenda", cfg.AgendaSpec, func(ctx context.Context) error {
		return s.RunAgenda(ctx)
	}); err != nil {
		return nil, err
	}

	if cfg.CompletedTodoRetention > 0 {
		if err := s.add("retention", cfg.RetentionSpec, func(ctx context.Context) error {
			_, err := s.RunRetention(ctx)
			return err
		}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Scheduler) add(name, spec string, job func(context.Context) error) error {
	if spec == "" {
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.logger.Errorw("Job failed", "job", name, "error", err)
			return
		}
		s.logger.Debugw("Job finished", "job", name, "duration", time.Since(start).String())
	})
	if err != nil {
		return fmt.Errorf("invalid %s schedule %q: %w", name, spec, err)
	}
	s.logger.Infow("Job scheduled", "job", name, "spec", spec)
	return nil
}

// Jobs returns the number of registered jobs
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunAgenda logs today's classes and the open todos due today
func (s *Scheduler) RunAgenda(ctx context.Context) error {
	now := time.Now().In(s.timetable.Location())

	classes, err := s.timetable.ClassesOn(ctx, now)
	if err != nil {
		return err
	}
	due, err := s.todos.DueOn(ctx, now)
	if err != nil {
		return err
	}

	subjects := make([]string, 0, len(classes))
	for _, c := range classes {
		subjects = append(subjects, c.StartTime+" "+c.Subject)
	}
	titles := make([]string, 0, len(due))
	for _, t := range due {
		titles = append(titles, t.Title)
	}

	s.logger.Infow("Daily agenda",
		"date", now.Format("2006-01-02"),
		"semester_week", s.timetable.SemesterWeek(now),
		"classes", subjects,
		"todos_due", titles,
	)
	return nil
}

// RunRetention deletes completed todos older than the configured retention
func (s *Scheduler) RunRetention(ctx context.Context) (int64, error) {
	return s.todos.PurgeCompleted(ctx, s.retention)
}

// cronLogger adapts the application logger to cron.Logger
type cronLogger struct {
	l *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
