package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/petalmind/petalmind-gateway/pkg/domain"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *messageRepository {
	return &messageRepository{db: db}
}

// Append stores one turn and bumps the parent chat's updated_at in the same
// transaction. Ownership of chatID must be verified by the caller.
func (m *messageRepository) Append(ctx context.Context, chatID int64, role, content, imageURL string) (*domain.Message, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const insertQuery = `
		INSERT INTO messages (chat_id, role, content, image_url)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, chat_id, role, content, COALESCE(image_url, ''), created_at
	`

	var msg domain.Message
	err = tx.QueryRowContext(ctx, insertQuery, chatID, role, content, imageURL).
		Scan(&msg.ID, &msg.ChatID, &msg.Role, &msg.Content, &msg.ImageURL, &msg.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}

	const bumpQuery = `
		UPDATE chats SET updated_at = now() WHERE id = $1
	`

	if _, err := tx.ExecContext(ctx, bumpQuery, chatID); err != nil {
		return nil, fmt.Errorf("bumping chat updated_at: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return &msg, nil
}

// ListByChat returns the chat's messages in timestamp order, oldest first.
func (m *messageRepository) ListByChat(ctx context.Context, chatID int64) ([]domain.Message, error) {
	const query = `
		SELECT id, chat_id, role, content, COALESCE(image_url, ''), created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := m.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.Role, &msg.Content, &msg.ImageURL, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
