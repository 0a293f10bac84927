package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/petalmind/petalmind-gateway/pkg/domain"
)

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) *chatRepository {
	return &chatRepository{db: db}
}

func (c *chatRepository) Create(ctx context.Context, ownerID, title string) (*domain.Chat, error) {
	const query = `
		INSERT INTO chats (owner_id, title)
		VALUES ($1, $2)
		RETURNING id, owner_id, title, created_at, updated_at
	`

	var chat domain.Chat
	err := c.db.QueryRowContext(ctx, query, ownerID, title).
		Scan(&chat.ID, &chat.OwnerID, &chat.Title, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating chat: %w", err)
	}

	return &chat, nil
}

// ListByOwner returns the owner's chats, most recently updated first.
func (c *chatRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Chat, error) {
	const query = `
		SELECT id, owner_id, title, created_at, updated_at
		FROM chats
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := c.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing chats: %w", err)
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var chat domain.Chat
		if err := rows.Scan(&chat.ID, &chat.OwnerID, &chat.Title, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat row: %w", err)
		}
		chats = append(chats, chat)
	}

	return chats, rows.Err()
}

// GetByID fetches a chat only when it belongs to ownerID; a chat owned by
// someone else yields ErrAccessDenied, never the other owner's data.
func (c *chatRepository) GetByID(ctx context.Context, ownerID string, chatID int64) (*domain.Chat, error) {
	const query = `
		SELECT id, owner_id, title, created_at, updated_at
		FROM chats
		WHERE id = $1 AND owner_id = $2
	`

	var chat domain.Chat
	err := c.db.QueryRowContext(ctx, query, chatID, ownerID).
		Scan(&chat.ID, &chat.OwnerID, &chat.Title, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccessDenied
		}
		return nil, fmt.Errorf("fetching chat by id: %w", err)
	}

	return &chat, nil
}

func (c *chatRepository) Rename(ctx context.Context, ownerID string, chatID int64, title string) (*domain.Chat, error) {
	const query = `
		UPDATE chats
		SET title = $3, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, title, created_at, updated_at
	`

	var chat domain.Chat
	err := c.db.QueryRowContext(ctx, query, chatID, ownerID, title).
		Scan(&chat.ID, &chat.OwnerID, &chat.Title, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccessDenied
		}
		return nil, fmt.Errorf("renaming chat: %w", err)
	}

	return &chat, nil
}

func (c *chatRepository) Delete(ctx context.Context, ownerID string, chatID int64) error {
	const query = `
		DELETE FROM chats
		WHERE id = $1 AND owner_id = $2
	`

	res, err := c.db.ExecContext(ctx, query, chatID, ownerID)
	if err != nil {
		return fmt.Errorf("deleting chat: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrAccessDenied
	}

	return nil
}
