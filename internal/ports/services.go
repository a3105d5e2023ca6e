package ports

import (
	"context"
	"time"

	"github.com/studybuddy/core/internal/domain/entities"
)

// AIBackend is the external service that owns document extraction, note
// generation, retrieval-augmented chat and document export.
type AIBackend interface {
	GenerateNotes(ctx context.Context, req GenerateNotesInput) (*GeneratedNotes, error)
	Chat(ctx context.Context, req BackendChatInput) (*BackendChatOutput, error)
	ChatImage(ctx context.Context, req ImageChatInput) (*BackendChatOutput, error)
	Extract(ctx context.Context, files []Upload, model string) (*ExtractResult, error)
	Export(ctx context.Context, req ExportInput) (*ExportedDocument, error)
	Health(ctx context.Context) error
}

// PDFRenderer turns standalone HTML into a PDF document
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// MarkdownRenderer converts markdown to HTML fragments and standalone pages
type MarkdownRenderer interface {
	Render(markdown []byte) ([]byte, error)
	Document(title string, markdown []byte) ([]byte, error)
}

// Upload is a file received from the client and forwarded upstream
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// GenerateNotesInput is sent to the AI backend to produce notes from documents
type GenerateNotesInput struct {
	Model string
	Files []Upload
}

// GeneratedNotes is the AI backend's note generation result
type GeneratedNotes struct {
	Notes     string `json:"notes"`
	ModelUsed string `json:"model_used"`
}

// BackendChatInput is the chat request forwarded to the AI backend
type BackendChatInput struct {
	Message      string
	Model        string
	History      []entities.ChatMessage
	ContextNotes string
	UseRAG       bool
}

// ImageChatInput asks a vision model about one uploaded image
type ImageChatInput struct {
	Message string
	Model   string
	Image   Upload
}

// Source is a retrieved passage the backend grounded its answer in
type Source struct {
	Filename   string  `json:"filename"`
	Chunk      string  `json:"chunk"`
	Similarity float64 `json:"similarity"`
}

// BackendChatOutput is the AI backend's chat response
type BackendChatOutput struct {
	Message string   `json:"message"`
	Model   string   `json:"model"`
	Sources []Source `json:"sources"`
}

// ExtractResult is the markdown extracted from uploaded documents
type ExtractResult struct {
	Markdown       string `json:"markdown"`
	FilesProcessed int    `json:"files_processed"`
}

// ExportInput asks the backend to render markdown into a document
type ExportInput struct {
	Content      string
	Title        string
	Format       ExportFormat
	AddWatermark bool
}

// ExportedDocument is a rendered binary document
type ExportedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportFormat names a document format
type ExportFormat string

const (
	ExportMarkdown ExportFormat = "markdown"
	ExportPDF      ExportFormat = "pdf"
	ExportDOCX     ExportFormat = "docx"
)

// ParseExportFormat accepts "md" as an alias of markdown
func ParseExportFormat(s string) (ExportFormat, error) {
	switch s {
	case "markdown", "md":
		return ExportMarkdown, nil
	case "pdf":
		return ExportPDF, nil
	case "docx":
		return ExportDOCX, nil
	}
	return "", entities.ErrUnsupportedFormat
}

// Request/Response Types

type CreateFolderRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"omitempty,max=20"`
}

type UpdateFolderRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Color *string `json:"color" validate:"omitempty,max=20"`
}

type CreateNoteRequest struct {
	Title     string  `json:"title" validate:"required,max=500"`
	Content   string  `json:"content"`
	FolderID  *int    `json:"folder_id" validate:"omitempty,min=1"`
	ModelUsed *string `json:"model_used" validate:"omitempty,max=100"`
}

type UpdateNoteRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=500"`
	Content  *string `json:"content"`
	FolderID *int    `json:"folder_id" validate:"omitempty,min=1"`
}

type GenerateNoteRequest struct {
	Model    string
	FolderID *int
	Title    string
	Files    []Upload
}

type GenerateNoteResponse struct {
	Note           *entities.Note `json:"note"`
	ProcessingTime float64        `json:"processing_time"`
}

type ImportNotesResponse struct {
	Notes []*entities.Note `json:"notes"`
}

type CreateTimetableEntryRequest struct {
	Day       string `json:"day" yaml:"day" validate:"required,weekday"`
	StartTime string `json:"start_time" yaml:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" yaml:"end_time" validate:"required,hhmm"`
	Subject   string `json:"subject" yaml:"subject" validate:"required,max=200"`
	Type      string `json:"type" yaml:"type" validate:"max=50"`
	Location  string `json:"location" yaml:"location" validate:"max=200"`
}

type UpdateTimetableEntryRequest struct {
	Day       *string `json:"day" validate:"omitempty,weekday"`
	StartTime *string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime   *string `json:"end_time" validate:"omitempty,hhmm"`
	Subject   *string `json:"subject" validate:"omitempty,min=1,max=200"`
	Type      *string `json:"type" validate:"omitempty,max=50"`
	Location  *string `json:"location" validate:"omitempty,max=200"`
}

type ImportTimetableResponse struct {
	Message        string `json:"message"`
	EntriesCreated int    `json:"entries_created"`
}

// Occurrence is one concrete class meeting on a calendar date
type Occurrence struct {
	EntryID  int       `json:"entry_id"`
	Subject  string    `json:"subject"`
	Type     string    `json:"type"`
	Location string    `json:"location"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CreateTodoRequest struct {
	Title       string     `json:"title" validate:"required,max=500"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTodoRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=500"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Pinned      *bool      `json:"pinned"`
	DueDate     *time.Time `json:"due_date"`
	ClearDue    bool       `json:"clear_due_date"`
}

type CreateSubtaskRequest struct {
	Title string `json:"title" validate:"required,max=500"`
}

type UpdateSubtaskRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=500"`
	Completed *bool   `json:"completed"`
}

type ChatRequest struct {
	Message             string                 `json:"message" validate:"required"`
	Model               string                 `json:"model"`
	ConversationID      string                 `json:"conversation_id" validate:"omitempty,uuid"`
	ConversationHistory []entities.ChatMessage `json:"conversation_history"`
	UseRAG              bool                   `json:"use_rag"`
	FolderIDs           []int                  `json:"folder_ids"`
}

type ChatResponse struct {
	Response       string   `json:"response"`
	Model          string   `json:"model"`
	Sources        []Source `json:"sources"`
	ConversationID string   `json:"conversation_id"`
}

type ImageChatResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

type ExportDocumentRequest struct {
	Markdown     string `json:"markdown" validate:"required"`
	Format       string `json:"format" validate:"required,oneof=pdf docx markdown md"`
	Title        string `json:"title"`
	AddWatermark bool   `json:"add_watermark"`
}

type ApplyMarkdownRequest struct {
	Content        string `json:"content"`
	SelectionStart int    `json:"selection_start" validate:"min=0"`
	SelectionEnd   int    `json:"selection_end" validate:"min=0"`
	Tag            string `json:"tag" validate:"required"`
}

type ApplyMarkdownResponse struct {
	Content string `json:"content"`
	Caret   int    `json:"caret"`
}

// Dashboard summarises the current state for the landing page
type Dashboard struct {
	ActiveTodos  int                        `json:"active_todos"`
	PinnedTodos  []*entities.Todo           `json:"pinned_todos"`
	DueToday     []*entities.Todo           `json:"due_today"`
	FolderCount  int                        `json:"folder_count"`
	Today        entities.Weekday           `json:"today"`
	TodayClasses []*entities.TimetableEntry `json:"today_classes"`
	SemesterWeek int                        `json:"semester_week"`
	GeneratedAt  time.Time                  `json:"generated_at"`
}
