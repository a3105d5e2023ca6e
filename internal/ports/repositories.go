package ports

import (
	"context"
	"time"

	"github.com/studybuddy/core/internal/domain/entities"
)

// FolderRepository defines the interface for folder data operations
type FolderRepository interface {
	Create(ctx context.Context, folder *entities.Folder) error
	GetByID(ctx context.Context, id int) (*entities.Folder, error)
	Update(ctx context.Context, folder *entities.Folder) error
	// Delete removes the folder together with its notes
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]*entities.Folder, error)
	Count(ctx context.Context) (int, error)
}

// NoteRepository defines the interface for note data operations
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) error
	GetByID(ctx context.Context, id int) (*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filter NoteFilter) ([]*entities.Note, error)
	Search(ctx context.Context, query string, limit int) ([]*entities.Note, error)
}

// TimetableRepository defines the interface for timetable data operations
type TimetableRepository interface {
	Create(ctx context.Context, entry *entities.TimetableEntry) error
	// CreateBatch inserts all entries or none
	CreateBatch(ctx context.Context, entries []*entities.TimetableEntry) error
	GetByID(ctx context.Context, id int) (*entities.TimetableEntry, error)
	Update(ctx context.Context, entry *entities.TimetableEntry) error
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) (int64, error)
	// List returns entries ordered by weekday then start time
	List(ctx context.Context) ([]*entities.TimetableEntry, error)
	ListByDay(ctx context.Context, day entities.Weekday) ([]*entities.TimetableEntry, error)
}

// TodoRepository defines the interface for todo and subtask data operations
type TodoRepository interface {
	Create(ctx context.Context, todo *entities.Todo) error
	GetByID(ctx context.Context, id int) (*entities.Todo, error)
	Update(ctx context.Context, todo *entities.Todo) error
	Delete(ctx context.Context, id int) error
	// List returns todos pinned first, then newest first, with subtasks
	List(ctx context.Context, filter TodoFilter) ([]*entities.Todo, error)
	DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)

	CreateSubtask(ctx context.Context, subtask *entities.Subtask) error
	GetSubtask(ctx context.Context, todoID, subtaskID int) (*entities.Subtask, error)
	UpdateSubtask(ctx context.Context, subtask *entities.Subtask) error
	DeleteSubtask(ctx context.Context, todoID, subtaskID int) error
}

// ConversationRepository stores assistant chat history
type ConversationRepository interface {
	Create(ctx context.Context, conversation *entities.Conversation) error
	GetByID(ctx context.Context, id string) (*entities.Conversation, error)
	AppendMessages(ctx context.Context, id string, messages ...entities.ChatMessage) error
}

// NoteFilter narrows note listings
type NoteFilter struct {
	FolderID  *int
	FolderIDs []int
	Limit     int
}

// TodoFilter narrows todo listings
type TodoFilter struct {
	Completed *bool
	Pinned    *bool
}
