package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

func newAssistant(t *testing.T, ai *fakeAI) (*AssistantService, *store) {
	t.Helper()
	st := newStore(t)
	return NewAssistantService(ai, st.notes, st.conversations, "gemini-2.5-flash", logger.NewNop()), st
}

func TestAssistantService_StartsConversation(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{chatOut: &ports.BackendChatOutput{
		Message: "Osmosis is diffusion of water.",
		Model:   "gemini-2.5-flash",
		Sources: []ports.Source{{Filename: "bio.pdf", Chunk: "water moves", Similarity: 0.91}},
	}}
	svc, _ := newAssistant(t, ai)

	history := []entities.ChatMessage{
		{Role: entities.ChatRoleUser, Content: "hi"},
		{Role: entities.ChatRoleAssistant, Content: "hello"},
	}
	resp, err := svc.Chat(ctx, ports.ChatRequest{Message: "What is osmosis?", ConversationHistory: history, UseRAG: true})
	require.NoError(t, err)

	assert.Equal(t, "Osmosis is diffusion of water.", resp.Response)
	assert.Len(t, resp.Sources, 1)
	_, err = uuid.Parse(resp.ConversationID)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", ai.chatIn.Model)
	assert.Equal(t, history, ai.chatIn.History)
	assert.True(t, ai.chatIn.UseRAG)
	assert.Empty(t, ai.chatIn.ContextNotes)

	conv, err := svc.GetConversation(ctx, resp.ConversationID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 4)
	assert.Equal(t, "hi", conv.Messages[0].Content)
	assert.Equal(t, entities.ChatMessage{Role: entities.ChatRoleAssistant, Content: "Osmosis is diffusion of water."}, conv.Messages[3])
}

func TestAssistantService_ContinuesConversation(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{chatOut: &ports.BackendChatOutput{Message: "first", Model: "m"}}
	svc, _ := newAssistant(t, ai)

	first, err := svc.Chat(ctx, ports.ChatRequest{Message: "one"})
	require.NoError(t, err)

	ai.chatOut = &ports.BackendChatOutput{Message: "second", Model: "m"}
	second, err := svc.Chat(ctx, ports.ChatRequest{
		Message:             "two",
		ConversationID:      first.ConversationID,
		ConversationHistory: []entities.ChatMessage{{Role: entities.ChatRoleUser, Content: "ignored"}},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	require.Len(t, ai.chatIn.History, 2, "stored history replaces the client's")
	assert.Equal(t, "one", ai.chatIn.History[0].Content)

	conv, err := svc.GetConversation(ctx, first.ConversationID)
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 4)

	_, err = svc.Chat(ctx, ports.ChatRequest{Message: "x", ConversationID: uuid.New().String()})
	assert.ErrorIs(t, err, entities.ErrConversationNotFound)
}

func TestAssistantService_ContextNotes(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{chatOut: &ports.BackendChatOutput{Message: "ok"}}
	svc, st := newAssistant(t, ai)

	bio := &entities.Folder{Name: "Biology", Color: DefaultFolderColor}
	require.NoError(t, st.folders.Create(ctx, bio))
	other := &entities.Folder{Name: "Other", Color: DefaultFolderColor}
	require.NoError(t, st.folders.Create(ctx, other))

	require.NoError(t, st.notes.Create(ctx, &entities.Note{Title: "Cells", Content: "Mitochondria", FolderID: &bio.ID}))
	require.NoError(t, st.notes.Create(ctx, &entities.Note{Title: "Unrelated", Content: "skip", FolderID: &other.ID}))

	_, err := svc.Chat(ctx, ports.ChatRequest{Message: "summarise", FolderIDs: []int{bio.ID}})
	require.NoError(t, err)
	assert.Equal(t, "### Cells\nMitochondria", ai.chatIn.ContextNotes)
}

func TestAssistantService_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAssistant(t, &fakeAI{})

	_, err := svc.Chat(ctx, ports.ChatRequest{Message: "  "})
	assert.ErrorIs(t, err, entities.ErrEmptyContent)

	_, err = svc.GetConversation(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, entities.ErrConversationNotFound)

	_, err = svc.GetConversation(ctx, uuid.New().String())
	assert.ErrorIs(t, err, entities.ErrConversationNotFound)
}

func TestAssistantService_ChatImage(t *testing.T) {
	ctx := context.Background()
	ai := &fakeAI{chatOut: &ports.BackendChatOutput{Message: "A mitochondrion.", Model: "gemini-2.5-flash"}}
	svc, st := newAssistant(t, ai)
	image := ports.Upload{Filename: "cell.png", ContentType: "image/png", Data: []byte("\x89PNG")}

	resp, err := svc.ChatImage(ctx, "  What organelle is this?  ", "", image)
	require.NoError(t, err)
	assert.Equal(t, "A mitochondrion.", resp.Response)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
	assert.Equal(t, "What organelle is this?", ai.imageIn.Message)
	assert.Equal(t, "gemini-2.5-flash", ai.imageIn.Model, "default model")
	assert.Equal(t, image, ai.imageIn.Image)

	var count int
	require.NoError(t, st.db.DB.Get(&count, "SELECT COUNT(*) FROM conversations"))
	assert.Zero(t, count, "image chats are not stored")
}

func TestAssistantService_ChatImageErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAssistant(t, &fakeAI{chatOut: &ports.BackendChatOutput{}})
	image := ports.Upload{Filename: "cell.png", Data: []byte("img")}

	_, err := svc.ChatImage(ctx, "   ", "", image)
	assert.ErrorIs(t, err, entities.ErrEmptyContent)

	_, err = svc.ChatImage(ctx, "What is this?", "", ports.Upload{Filename: "empty.png"})
	assert.ErrorIs(t, err, entities.ErrEmptyContent)

	_, err = svc.ChatImage(ctx, "What is this?", "github-gpt-4o", image)
	assert.ErrorIs(t, err, entities.ErrNoVisionModel)
}
