package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/logger"
	"github.com/studybuddy/core/internal/ports"
)

// maxContextNotes bounds how many folder notes are attached to a chat message
const maxContextNotes = 20

// AssistantService answers chat messages through the AI backend and keeps
// the conversation history
type AssistantService struct {
	ai           ports.AIBackend
	noteRepo     ports.NoteRepository
	convRepo     ports.ConversationRepository
	defaultModel string
	logger       *logger.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(
	ai ports.AIBackend,
	noteRepo ports.NoteRepository,
	convRepo ports.ConversationRepository,
	defaultModel string,
	logger *logger.Logger,
) *AssistantService {
	return &AssistantService{
		ai:           ai,
		noteRepo:     noteRepo,
		convRepo:     convRepo,
		defaultModel: defaultModel,
		logger:       logger,
	}
}

// Chat sends one message. With a conversation ID the stored history is used
// and the exchange is appended; otherwise a new conversation is started from
// the client-supplied history.
func (s *AssistantService) Chat(ctx context.Context, req ports.ChatRequest) (*ports.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("message is required: %w", entities.ErrEmptyContent)
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = s.defaultModel
	}

	history := req.ConversationHistory
	var existing *entities.Conversation
	if req.ConversationID != "" {
		conv, err := s.convRepo.GetByID(ctx, req.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("failed to get conversation: %w", err)
		}
		existing = conv
		history = conv.Messages
	}

	contextNotes, err := s.contextNotes(ctx, req.FolderIDs)
	if err != nil {
		return nil, err
	}

	reply, err := s.ai.Chat(ctx, ports.BackendChatInput{
		Message:      message,
		Model:        model,
		History:      history,
		ContextNotes: contextNotes,
		UseRAG:       req.UseRAG,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get assistant reply: %w", err)
	}

	exchange := []entities.ChatMessage{
		{Role: entities.ChatRoleUser, Content: message},
		{Role: entities.ChatRoleAssistant, Content: reply.Message},
	}

	conversationID := req.ConversationID
	if existing != nil {
		if err := s.convRepo.AppendMessages(ctx, existing.ID, exchange...); err != nil {
			return nil, fmt.Errorf("failed to save conversation: %w", err)
		}
	} else {
		conv := &entities.Conversation{
			ID:       uuid.New().String(),
			Model:    model,
			Messages: append(append([]entities.ChatMessage{}, history...), exchange...),
		}
		if err := s.convRepo.Create(ctx, conv); err != nil {
			return nil, fmt.Errorf("failed to save conversation: %w", err)
		}
		conversationID = conv.ID
	}

	s.logger.Infow("Assistant replied",
		"conversation_id", conversationID,
		"model", reply.Model,
		"sources", len(reply.Sources),
		"context_folders", len(req.FolderIDs),
	)

	return &ports.ChatResponse{
		Response:       reply.Message,
		Model:          reply.Model,
		Sources:        reply.Sources,
		ConversationID: conversationID,
	}, nil
}

// ChatImage asks a vision model about an image. Only gemini models accept
// images, and the exchange is not stored as a conversation.
func (s *AssistantService) ChatImage(ctx context.Context, message, model string, image ports.Upload) (*ports.ImageChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("message is required: %w", entities.ErrEmptyContent)
	}
	if len(image.Data) == 0 {
		return nil, fmt.Errorf("image %q is empty: %w", image.Filename, entities.ErrEmptyContent)
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = s.defaultModel
	}
	if !strings.HasPrefix(model, "gemini") {
		return nil, entities.ErrNoVisionModel
	}

	reply, err := s.ai.ChatImage(ctx, ports.ImageChatInput{Message: message, Model: model, Image: image})
	if err != nil {
		return nil, fmt.Errorf("failed to get assistant reply: %w", err)
	}

	s.logger.Infow("Assistant replied to image",
		"model", reply.Model,
		"filename", image.Filename,
		"bytes", len(image.Data),
	)
	return &ports.ImageChatResponse{Response: reply.Message, Model: reply.Model}, nil
}

// contextNotes joins the most recent notes of the given folders
func (s *AssistantService) contextNotes(ctx context.Context, folderIDs []int) (string, error) {
	if len(folderIDs) == 0 {
		return "", nil
	}

	notes, err := s.noteRepo.List(ctx, ports.NoteFilter{FolderIDs: folderIDs, Limit: maxContextNotes})
	if err != nil {
		return "", fmt.Errorf("failed to load context notes: %w", err)
	}

	parts := make([]string, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, fmt.Sprintf("### %s\n%s", n.Title, n.Content))
	}
	return strings.Join(parts, "\n\n---\n\n"), nil
}

// GetConversation returns a stored conversation with its messages
func (s *AssistantService) GetConversation(ctx context.Context, id string) (*entities.Conversation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entities.ErrConversationNotFound
	}

	conv, err := s.convRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrConversationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return conv, nil
}
