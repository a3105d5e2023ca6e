package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/studybuddy/core/internal/adapters/markdown"
	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// MaxSearchResults caps note search results
const MaxSearchResults = 100

// NoteService handles note operations, including import, export and
// AI note generation
type NoteService struct {
	noteRepo     ports.NoteRepository
	folderRepo   ports.FolderRepository
	ai           ports.AIBackend
	renderer     ports.MarkdownRenderer
	pdf          ports.PDFRenderer
	defaultModel string
	logger       *logger.Logger
}

// NewNoteService creates a new note service. pdf may be nil, in which case
// PDF export goes through the AI backend.
func NewNoteService(
	noteRepo ports.NoteRepository,
	folderRepo ports.FolderRepository,
	ai ports.AIBackend,
	renderer ports.MarkdownRenderer,
	pdf ports.PDFRenderer,
	defaultModel string,
	logger *logger.Logger,
) *NoteService {
	return &NoteService{
		noteRepo:     noteRepo,
		folderRepo:   folderRepo,
		ai:           ai,
		renderer:     renderer,
		pdf:          pdf,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

// ListNotes returns notes, optionally only those in one folder
func (s *NoteService) ListNotes(ctx context.Context, folderID *int) ([]*entities.Note, error) {
	notes, err := s.noteRepo.List(ctx, ports.NoteFilter{FolderID: folderID})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// GetNote retrieves a note by ID
func (s *NoteService) GetNote(ctx context.Context, id int) (*entities.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

func (s *NoteService) ensureFolder(ctx context.Context, folderID *int) error {
	if folderID == nil {
		return nil
	}
	if _, err := s.folderRepo.GetByID(ctx, *folderID); err != nil {
		return fmt.Errorf("failed to get folder: %w", err)
	}
	return nil
}

// CreateNote creates a new note
func (s *NoteService) CreateNote(ctx context.Context, req ports.CreateNoteRequest) (*entities.Note, error) {
	if err := s.ensureFolder(ctx, req.FolderID); err != nil {
		return nil, err
	}

	note := &entities.Note{
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		FolderID:  req.FolderID,
		ModelUsed: req.ModelUsed,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Infow("Note created", "note_id", note.ID, "title", note.Title)

	return note, nil
}

// UpdateNote applies a partial update to a note
func (s *NoteService) UpdateNote(ctx context.Context, id int, req ports.UpdateNoteRequest) (*entities.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	if req.FolderID != nil {
		if err := s.ensureFolder(ctx, req.FolderID); err != nil {
			return nil, err
		}
		note.FolderID = req.FolderID
	}
	if req.Title != nil {
		note.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		note.Content = *req.Content
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	s.logger.Infow("Note updated", "note_id", note.ID)

	return note, nil
}

// DeleteNote deletes a note
func (s *NoteService) DeleteNote(ctx context.Context, id int) error {
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	s.logger.Infow("Note deleted", "note_id", id)

	return nil
}

// SearchNotes finds notes whose title or content contains query
func (s *NoteService) SearchNotes(ctx context.Context, query string) ([]*entities.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*entities.Note{}, nil
	}

	notes, err := s.noteRepo.Search(ctx, query, MaxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	return notes, nil
}

// RenderNote returns the note content as an HTML fragment
func (s *NoteService) RenderNote(ctx context.Context, id int) ([]byte, error) {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	html, err := s.renderer.Render([]byte(note.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to render note: %w", err)
	}
	return html, nil
}

// ImportNotes creates one note per markdown file. Front matter may set the
// title and folder. folderID applies to files that do not name a folder.
func (s *NoteService) ImportNotes(ctx context.Context, files []ports.Upload, folderID *int) ([]*entities.Note, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files uploaded: %w", entities.ErrEmptyContent)
	}

	parsed := make([]*markdown.ImportedNote, 0, len(files))
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if ext != ".md" && ext != ".markdown" {
			return nil, fmt.Errorf("%s: %w", f.Filename, entities.ErrUnsupportedFormat)
		}

		imported, err := markdown.ParseNote(f.Filename, f.Data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Filename, err)
		}
		if imported.FolderID == nil {
			imported.FolderID = folderID
		}
		if err := s.ensureFolder(ctx, imported.FolderID); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Filename, err)
		}
		parsed = append(parsed, imported)
	}

	notes := make([]*entities.Note, 0, len(parsed))
	for _, imported := range parsed {
		note := &entities.Note{
			Title:    imported.Title,
			Content:  withTags(imported.Body, imported.Tags),
			FolderID: imported.FolderID,
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			return nil, fmt.Errorf("failed to import note: %w", err)
		}
		notes = append(notes, note)
	}

	s.logger.Infow("Notes imported", "count", len(notes))

	return notes, nil
}

// withTags keeps front matter tags as a hashtag line under the body
func withTags(body string, tags []string) string {
	if len(tags) == 0 {
		return body
	}
	hashtags := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.Join(strings.Fields(t), "-")
		if t != "" {
			hashtags = append(hashtags, "#"+t)
		}
	}
	if len(hashtags) == 0 {
		return body
	}
	return strings.TrimRight(body, "\n") + "\n\n" + strings.Join(hashtags, " ") + "\n"
}

// ExportNote renders a note as a downloadable document
func (s *NoteService) ExportNote(ctx context.Context, id int, format ports.ExportFormat) (*ports.ExportedDocument, error) {
	note, err := s.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}

	switch format {
	case ports.ExportMarkdown:
		return &ports.ExportedDocument{
			Filename:    note.Title + ".md",
			ContentType: "text/markdown; charset=utf-8",
			Data:        []byte(note.Markdown()),
		}, nil

	case ports.ExportPDF:
		if s.pdf != nil {
			page, err := s.renderer.Document(note.Title, []byte(note.Markdown()))
			if err != nil {
				return nil, fmt.Errorf("failed to render note: %w", err)
			}
			data, err := s.pdf.RenderPDF(ctx, page)
			if err != nil {
				return nil, fmt.Errorf("failed to export note: %w", err)
			}
			return &ports.ExportedDocument{
				Filename:    note.Title + ".pdf",
				ContentType: "application/pdf",
				Data:        data,
			}, nil
		}
		fallthrough

	case ports.ExportDOCX:
		doc, err := s.ai.Export(ctx, ports.ExportInput{
			Content: note.Content,
			Title:   note.Title,
			Format:  format,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to export note: %w", err)
		}
		if doc.Filename == "" {
			doc.Filename = note.Title + "." + string(format)
		}
		return doc, nil
	}

	return nil, entities.ErrUnsupportedFormat
}

// GenerateNote asks the AI backend to write notes from the uploaded
// documents and saves the result
func (s *NoteService) GenerateNote(ctx context.Context, req ports.GenerateNoteRequest) (*ports.GenerateNoteResponse, error) {
	if len(req.Files) == 0 {
		return nil, fmt.Errorf("no files uploaded: %w", entities.ErrEmptyContent)
	}
	if err := s.ensureFolder(ctx, req.FolderID); err != nil {
		return nil, err
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = s.defaultModel
	}

	start := time.Now()
	generated, err := s.ai.GenerateNotes(ctx, ports.GenerateNotesInput{Model: model, Files: req.Files})
	if err != nil {
		return nil, fmt.Errorf("failed to generate notes: %w", err)
	}
	if strings.TrimSpace(generated.Notes) == "" {
		return nil, fmt.Errorf("backend returned no notes: %w", entities.ErrEmptyContent)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		base := filepath.Base(req.Files[0].Filename)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	modelUsed := generated.ModelUsed
	note := &entities.Note{
		Title:     title,
		Content:   generated.Notes,
		FolderID:  req.FolderID,
		ModelUsed: &modelUsed,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to save generated note: %w", err)
	}

	elapsed := time.Since(start).Seconds()
	s.logger.Infow("Notes generated", "note_id", note.ID, "model", modelUsed, "files", len(req.Files), "seconds", elapsed)

	return &ports.GenerateNoteResponse{Note: note, ProcessingTime: elapsed}, nil
}
