package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/config"
	"github.com/studybuddy/core/internal/infrastructure/database"
	"github.com/studybuddy/core/internal/ports"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(config.DatabaseConfig{Driver: "sqlite3", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func intPtr(i int) *int { return &i }

func TestFolderRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	folders := NewFolderRepository(db)
	notes := NewNoteRepository(db)

	physics := &entities.Folder{Name: "Physics", Color: "#ff0000"}
	require.NoError(t, folders.Create(ctx, physics))
	assert.NotZero(t, physics.ID)
	assert.False(t, physics.CreatedAt.IsZero())

	algebra := &entities.Folder{Name: "algebra", Color: "#6366f1"}
	require.NoError(t, folders.Create(ctx, algebra))

	require.NoError(t, notes.Create(ctx, &entities.Note{Title: "Kinematics", FolderID: intPtr(physics.ID)}))
	require.NoError(t, notes.Create(ctx, &entities.Note{Title: "Forces", FolderID: intPtr(physics.ID)}))

	got, err := folders.GetByID(ctx, physics.ID)
	require.NoError(t, err)
	assert.Equal(t, "Physics", got.Name)
	assert.Equal(t, 2, got.NoteCount)

	list, err := folders.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "algebra", list[0].Name, "ordered case-insensitively")

	got.Name = "Mechanics"
	require.NoError(t, folders.Update(ctx, got))
	got, err = folders.GetByID(ctx, physics.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mechanics", got.Name)

	n, err := folders.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, folders.Delete(ctx, physics.ID))
	_, err = folders.GetByID(ctx, physics.ID)
	assert.ErrorIs(t, err, entities.ErrFolderNotFound)

	remaining, err := notes.List(ctx, ports.NoteFilter{})
	require.NoError(t, err)
	assert.Empty(t, remaining, "folder notes are deleted with it")

	assert.ErrorIs(t, folders.Delete(ctx, physics.ID), entities.ErrFolderNotFound)
	assert.ErrorIs(t, folders.Update(ctx, &entities.Folder{ID: 999, Name: "x"}), entities.ErrFolderNotFound)
}

func TestNoteRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	folders := NewFolderRepository(db)
	notes := NewNoteRepository(db)

	folder := &entities.Folder{Name: "Chemistry", Color: "#00ff00"}
	require.NoError(t, folders.Create(ctx, folder))

	model := "gemini-2.5-flash"
	first := &entities.Note{Title: "Acids", Content: "pH below seven", FolderID: intPtr(folder.ID), ModelUsed: &model}
	require.NoError(t, notes.Create(ctx, first))
	second := &entities.Note{Title: "Loose note", Content: "Bases are ALKALINE"}
	require.NoError(t, notes.Create(ctx, second))

	got, err := notes.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acids", got.Title)
	require.NotNil(t, got.FolderID)
	assert.Equal(t, folder.ID, *got.FolderID)
	require.NotNil(t, got.ModelUsed)
	assert.Equal(t, model, *got.ModelUsed)

	inFolder, err := notes.List(ctx, ports.NoteFilter{FolderID: intPtr(folder.ID)})
	require.NoError(t, err)
	require.Len(t, inFolder, 1)
	assert.Equal(t, first.ID, inFolder[0].ID)

	inFolders, err := notes.List(ctx, ports.NoteFilter{FolderIDs: []int{folder.ID, 999}})
	require.NoError(t, err)
	assert.Len(t, inFolders, 1)

	time.Sleep(5 * time.Millisecond)
	first.Content = "pH below 7"
	require.NoError(t, notes.Update(ctx, first))

	all, err := notes.List(ctx, ports.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID, "most recently updated first")

	limited, err := notes.List(ctx, ports.NoteFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	found, err := notes.Search(ctx, "alkaline", 100)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, second.ID, found[0].ID)

	found, err = notes.Search(ctx, "ACID", 100)
	require.NoError(t, err)
	assert.Len(t, found, 1, "title matches too")

	require.NoError(t, notes.Delete(ctx, second.ID))
	_, err = notes.GetByID(ctx, second.ID)
	assert.ErrorIs(t, err, entities.ErrNoteNotFound)
	assert.ErrorIs(t, notes.Delete(ctx, second.ID), entities.ErrNoteNotFound)
}

func TestNoteRepository_SearchMatchesWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	notes := NewNoteRepository(newTestDB(t))

	for _, title := range []string{"snake_case", "snakeXcase", "100% done", "1000 done", `C:\tmp`} {
		require.NoError(t, notes.Create(ctx, &entities.Note{Title: title}))
	}

	tests := []struct {
		query string
		want  string
	}{
		{"e_c", "snake_case"},
		{"0%", "100% done"},
		{`:\t`, `C:\tmp`},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			found, err := notes.Search(ctx, tt.query, 100)
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, tt.want, found[0].Title)
		})
	}
}

func TestTimetableRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewTimetableRepository(db)

	entries := []*entities.TimetableEntry{
		{Day: entities.Wednesday, StartTime: "10:00", EndTime: "11:00", Subject: "Physics", Type: "Lecture"},
		{Day: entities.Monday, StartTime: "13:00", EndTime: "14:30", Subject: "Chemistry", Type: "Lab"},
		{Day: entities.Monday, StartTime: "09:00", EndTime: "10:00", Subject: "Maths", Location: "Room 4"},
	}
	require.NoError(t, repo.CreateBatch(ctx, entries))
	for _, e := range entries {
		assert.NotZero(t, e.ID)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Maths", "Chemistry", "Physics"},
		[]string{list[0].Subject, list[1].Subject, list[2].Subject})

	monday, err := repo.ListByDay(ctx, entities.Monday)
	require.NoError(t, err)
	assert.Len(t, monday, 2)

	got, err := repo.GetByID(ctx, entries[0].ID)
	require.NoError(t, err)
	got.Day = entities.Friday
	require.NoError(t, repo.Update(ctx, got))

	friday, err := repo.ListByDay(ctx, entities.Friday)
	require.NoError(t, err)
	require.Len(t, friday, 1)
	assert.Equal(t, "Physics", friday[0].Subject)

	require.NoError(t, repo.Delete(ctx, entries[1].ID))
	_, err = repo.GetByID(ctx, entries[1].ID)
	assert.ErrorIs(t, err, entities.ErrTimetableNotFound)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestTimetableRepository_CreateBatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewTimetableRepository(newTestDB(t))

	err := repo.CreateBatch(ctx, []*entities.TimetableEntry{
		{Day: entities.Monday, StartTime: "09:00", EndTime: "10:00", Subject: "Maths"},
		{Day: entities.Monday, StartTime: "11:00", EndTime: "10:00", Subject: "Backwards"},
	})
	require.Error(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTodoRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTodoRepository(newTestDB(t))

	due := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	older := &entities.Todo{Title: "Read chapter 3"}
	require.NoError(t, repo.Create(ctx, older))
	time.Sleep(5 * time.Millisecond)
	pinned := &entities.Todo{Title: "Lab report", Pinned: true, DueDate: &due}
	require.NoError(t, repo.Create(ctx, pinned))
	time.Sleep(5 * time.Millisecond)
	newest := &entities.Todo{Title: "Buy pens"}
	require.NoError(t, repo.Create(ctx, newest))

	list, err := repo.List(ctx, ports.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{pinned.ID, newest.ID, older.ID}, []int{list[0].ID, list[1].ID, list[2].ID})
	assert.NotNil(t, list[0].Subtasks)
	require.NotNil(t, list[0].DueDate)
	assert.True(t, due.Equal(*list[0].DueDate))

	sub := &entities.Subtask{TodoID: pinned.ID, Title: "Write method"}
	require.NoError(t, repo.CreateSubtask(ctx, sub))
	require.NoError(t, repo.CreateSubtask(ctx, &entities.Subtask{TodoID: pinned.ID, Title: "Write results"}))

	got, err := repo.GetByID(ctx, pinned.ID)
	require.NoError(t, err)
	require.Len(t, got.Subtasks, 2)
	assert.Equal(t, "Write method", got.Subtasks[0].Title)

	sub.Completed = true
	require.NoError(t, repo.UpdateSubtask(ctx, sub))
	gotSub, err := repo.GetSubtask(ctx, pinned.ID, sub.ID)
	require.NoError(t, err)
	assert.True(t, gotSub.Completed)

	_, err = repo.GetSubtask(ctx, older.ID, sub.ID)
	assert.ErrorIs(t, err, entities.ErrSubtaskNotFound, "subtask is scoped to its todo")

	require.NoError(t, repo.DeleteSubtask(ctx, pinned.ID, sub.ID))
	assert.ErrorIs(t, repo.DeleteSubtask(ctx, pinned.ID, sub.ID), entities.ErrSubtaskNotFound)

	older.Completed = true
	require.NoError(t, repo.Update(ctx, older))

	completed := true
	done, err := repo.List(ctx, ports.TodoFilter{Completed: &completed})
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, older.ID, done[0].ID)

	require.NoError(t, repo.Delete(ctx, pinned.ID))
	_, err = repo.GetByID(ctx, pinned.ID)
	assert.ErrorIs(t, err, entities.ErrTodoNotFound)
	assert.ErrorIs(t, repo.Update(ctx, pinned), entities.ErrTodoNotFound)
}

func TestTodoRepository_DeleteCompletedBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewTodoRepository(newTestDB(t))

	done := &entities.Todo{Title: "done", Completed: true}
	require.NoError(t, repo.Create(ctx, done))
	require.NoError(t, repo.CreateSubtask(ctx, &entities.Subtask{TodoID: done.ID, Title: "step"}))
	open := &entities.Todo{Title: "open"}
	require.NoError(t, repo.Create(ctx, open))

	n, err := repo.DeleteCompletedBefore(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeleteCompletedBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := repo.List(ctx, ports.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, open.ID, list[0].ID)
}

func TestConversationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(newTestDB(t))

	conv := &entities.Conversation{
		ID:    "7b6f3f9c-2d38-4c1e-9d0a-0f1f7c1f2a11",
		Model: "gemini-2.5-flash",
		Messages: []entities.ChatMessage{
			{Role: entities.ChatRoleUser, Content: "What is entropy?"},
			{Role: entities.ChatRoleAssistant, Content: "A measure of disorder."},
		},
	}
	require.NoError(t, repo.Create(ctx, conv))

	require.NoError(t, repo.AppendMessages(ctx, conv.ID,
		entities.ChatMessage{Role: entities.ChatRoleUser, Content: "Give an example"},
		entities.ChatMessage{Role: entities.ChatRoleAssistant, Content: "Ice melting."},
	))

	got, err := repo.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "What is entropy?", got.Messages[0].Content)
	assert.Equal(t, entities.ChatRoleAssistant, got.Messages[3].Role)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrConversationNotFound)
	assert.ErrorIs(t, repo.AppendMessages(ctx, "missing", entities.ChatMessage{Role: entities.ChatRoleUser, Content: "hi"}),
		entities.ErrConversationNotFound)
}
