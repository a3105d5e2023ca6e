package server

import (
	"fmt"

	"github.com/studybuddy/core/internal/adapters/markdown"
	"github.com/studybuddy/core/internal/adapters/repository"
	"github.com/studybuddy/core/internal/application/services"
	"github.com/studybuddy/core/internal/domain/timegrid"
	"github.com/studybuddy/core/internal/infrastructure/config"
	"github.com/studybuddy/core/internal/infrastructure/database"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// Services is the application layer wired onto one database and AI backend
type Services struct {
	AI        ports.AIBackend
	Folders   *services.FolderService
	Notes     *services.NoteService
	Timetable *services.TimetableService
	Todos     *services.TodoService
	Assistant *services.AssistantService
	Pen2PDF   *services.Pen2PDFService
	Dashboard *services.DashboardService
}

// NewServices builds the repositories and services
func NewServices(cfg *config.Config, db *database.DB, ai ports.AIBackend, appLogger *logger.Logger) (*Services, error) {
	loc, err := cfg.Timetable.Location()
	if err != nil {
		return nil, err
	}
	semesterStart, err := cfg.Timetable.SemesterStartDate()
	if err != nil {
		return nil, fmt.Errorf("invalid semester start: %w", err)
	}

	// Initialize repositories
	folderRepo := repository.NewFolderRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	conversationRepo := repository.NewConversationRepository(db)

	var pdf ports.PDFRenderer
	if cfg.Export.Renderer == "chromedp" {
		pdf = markdown.NewChromePDFRenderer(cfg.Export.RenderTimeout)
	}

	model := cfg.AIBackend.DefaultModel

	// Initialize services
	todoService := services.NewTodoService(todoRepo, appLogger)
	timetableService := services.NewTimetableService(timetableRepo, services.TimetableOptions{
		Slots:         timegrid.HourSlots(cfg.Timetable.FirstHour, cfg.Timetable.LastHour),
		Location:      loc,
		SemesterStart: semesterStart,
		SemesterWeeks: cfg.Timetable.SemesterWeeks,
	}, appLogger)

	return &Services{
		AI:        ai,
		Folders:   services.NewFolderService(folderRepo, appLogger),
		Notes:     services.NewNoteService(noteRepo, folderRepo, ai, markdown.NewRenderer(), pdf, model, appLogger),
		Timetable: timetableService,
		Todos:     todoService,
		Assistant: services.NewAssistantService(ai, noteRepo, conversationRepo, model, appLogger),
		Pen2PDF:   services.NewPen2PDFService(ai, model, appLogger),
		Dashboard: services.NewDashboardService(todoService, folderRepo, timetableService),
	}, nil
}
