package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/studybuddy/core/internal/domain/entities"
	"github.com/studybuddy/core/internal/infrastructure/database"
	"github.com/studybuddy/core/internal/ports"
)

// ConversationRepositoryImpl implements the ConversationRepository interface
type ConversationRepositoryImpl struct {
	db   *sqlx.DB
	conn *database.DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(conn *database.DB) ports.ConversationRepository {
	return &ConversationRepositoryImpl{db: conn.DB, conn: conn}
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conversation *entities.Conversation) error {
	return r.conn.WithTransaction(ctx, "create conversation", func(tx *sqlx.Tx) error {
		ts := now()
		_, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO conversations (id, model, created_at, updated_at)
			VALUES (?, ?, ?, ?)`),
			conversation.ID, conversation.Model, ts, ts)
		if err != nil {
			return fmt.Errorf("create conversation: %w", err)
		}

		conversation.CreatedAt = ts
		conversation.UpdatedAt = ts
		return insertMessages(ctx, tx, conversation.ID, conversation.Messages)
	})
}

func (r *ConversationRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Conversation, error) {
	query := r.db.Rebind(`SELECT id, model, created_at, updated_at FROM conversations WHERE id = ?`)

	var conversation entities.Conversation
	if err := r.db.GetContext(ctx, &conversation, query, id); err != nil {
		return nil, lookupError(err, "get conversation", entities.ErrConversationNotFound)
	}

	conversation.Messages = []entities.ChatMessage{}
	err := r.db.SelectContext(ctx, &conversation.Messages, r.db.Rebind(`
		SELECT role, content FROM conversation_messages
		WHERE conversation_id = ?
		ORDER BY id`), id)
	if err != nil {
		return nil, fmt.Errorf("load conversation messages: %w", err)
	}

	return &conversation, nil
}

func (r *ConversationRepositoryImpl) AppendMessages(ctx context.Context, id string, messages ...entities.ChatMessage) error {
	return r.conn.WithTransaction(ctx, "append messages", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE conversations SET updated_at = ? WHERE id = ?`), now(), id)
		if err != nil {
			return fmt.Errorf("append conversation messages: %w", err)
		}
		if err := checkAffected(result, "append conversation messages", entities.ErrConversationNotFound); err != nil {
			return err
		}
		return insertMessages(ctx, tx, id, messages)
	})
}

func insertMessages(ctx context.Context, tx *sqlx.Tx, conversationID string, messages []entities.ChatMessage) error {
	query := tx.Rebind(`
		INSERT INTO conversation_messages (conversation_id, role, content, created_at)
		VALUES (?, ?, ?, ?)`)

	for _, m := range messages {
		if _, err := tx.ExecContext(ctx, query, conversationID, m.Role, m.Content, now()); err != nil {
			return fmt.Errorf("insert conversation message: %w", err)
		}
	}
	return nil
}
