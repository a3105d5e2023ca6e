package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studybuddy/core/internal/adapters/repository"
	"github.com/studybuddy/core/internal/infrastructure/config"
	"github.com/studybuddy/core/internal/infrastructure/database"
	"github.com/studybuddy/core/internal/ports"
)

type store struct {
	db            *database.DB
	folders       ports.FolderRepository
	notes         ports.NoteRepository
	timetable     ports.TimetableRepository
	todos         ports.TodoRepository
	conversations ports.ConversationRepository
}

func newStore(t *testing.T) *store {
	t.Helper()
	db, err := database.New(config.DatabaseConfig{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	return &store{
		db:            db,
		folders:       repository.NewFolderRepository(db),
		notes:         repository.NewNoteRepository(db),
		timetable:     repository.NewTimetableRepository(db),
		todos:         repository.NewTodoRepository(db),
		conversations: repository.NewConversationRepository(db),
	}
}

// fakeAI records the last request of each kind and returns canned replies
type fakeAI struct {
	generateIn  ports.GenerateNotesInput
	generateOut *ports.GeneratedNotes
	chatIn      ports.BackendChatInput
	chatOut     *ports.BackendChatOutput
	imageIn     ports.ImageChatInput
	extractOut  *ports.ExtractResult
	exportIn    ports.ExportInput
	exportOut   *ports.ExportedDocument
	err         error
}

func (f *fakeAI) GenerateNotes(_ context.Context, req ports.GenerateNotesInput) (*ports.GeneratedNotes, error) {
	f.generateIn = req
	if f.err != nil {
		return nil, f.err
	}
	return f.generateOut, nil
}

func (f *fakeAI) Chat(_ context.Context, req ports.BackendChatInput) (*ports.BackendChatOutput, error) {
	f.chatIn = req
	if f.err != nil {
		return nil, f.err
	}
	return f.chatOut, nil
}

func (f *fakeAI) ChatImage(_ context.Context, req ports.ImageChatInput) (*ports.BackendChatOutput, error) {
	f.imageIn = req
	if f.err != nil {
		return nil, f.err
	}
	return f.chatOut, nil
}

func (f *fakeAI) Extract(_ context.Context, files []ports.Upload, model string) (*ports.ExtractResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.extractOut, nil
}

func (f *fakeAI) Export(_ context.Context, req ports.ExportInput) (*ports.ExportedDocument, error) {
	f.exportIn = req
	if f.err != nil {
		return nil, f.err
	}
	out := *f.exportOut
	return &out, nil
}

func (f *fakeAI) Health(context.Context) error { return f.err }

type fakePDF struct {
	html []byte
}

func (f *fakePDF) RenderPDF(_ context.Context, html []byte) ([]byte, error) {
	f.html = html
	return []byte("%PDF-1.7"), nil
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
func itoa(i int) string       { return strconv.Itoa(i) }
