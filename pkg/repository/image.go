package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/petalmind/petalmind-gateway/pkg/domain"
)

type imageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) *imageRepository {
	return &imageRepository{db: db}
}

func (i *imageRepository) Create(ctx context.Context, ownerID, imageURL, prompt string) (*domain.GeneratedImage, error) {
	const query = `
		INSERT INTO generated_images (owner_id, image_url, prompt)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, image_url, prompt, created_at
	`

	var img domain.GeneratedImage
	err := i.db.QueryRowContext(ctx, query, ownerID, imageURL, prompt).
		Scan(&img.ID, &img.OwnerID, &img.ImageURL, &img.Prompt, &img.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating image record: %w", err)
	}

	return &img, nil
}

func (i *imageRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.GeneratedImage, error) {
	const query = `
		SELECT id, owner_id, image_url, prompt, created_at
		FROM generated_images
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := i.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing image records: %w", err)
	}
	defer rows.Close()

	var images []domain.GeneratedImage
	for rows.Next() {
		var img domain.GeneratedImage
		if err := rows.Scan(&img.ID, &img.OwnerID, &img.ImageURL, &img.Prompt, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning image row: %w", err)
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

func (i *imageRepository) GetByID(ctx context.Context, ownerID string, imageID int64) (*domain.GeneratedImage, error) {
	const query = `
		SELECT id, owner_id, image_url, prompt, created_at
		FROM generated_images
		WHERE id = $1 AND owner_id = $2
	`

	var img domain.GeneratedImage
	err := i.db.QueryRowContext(ctx, query, imageID, ownerID).
		Scan(&img.ID, &img.OwnerID, &img.ImageURL, &img.Prompt, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("fetching image by id: %w", err)
	}

	return &img, nil
}
