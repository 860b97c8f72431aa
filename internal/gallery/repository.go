package gallery

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetList(ctx context.Context) ([]Image, error)
	Create(ctx context.Context, filename string, caption *string) (*Image, error)
	Delete(ctx context.Context, id uint) (*Image, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetList(ctx context.Context) ([]Image, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, filename, caption, created_at
		FROM gallery_images
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.Filename, &img.Caption, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

func (r *repository) Create(ctx context.Context, filename string, caption *string) (*Image, error) {
	var img Image
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO gallery_images (filename, caption)
		VALUES ($1, $2)
		RETURNING id, filename, caption, created_at
	`, filename, caption).Scan(&img.ID, &img.Filename, &img.Caption, &img.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &img, nil
}

// Delete returns the removed row so the caller can clean up the blob.
func (r *repository) Delete(ctx context.Context, id uint) (*Image, error) {
	var img Image
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM gallery_images
		WHERE id = $1
		RETURNING id, filename, caption, created_at
	`, id).Scan(&img.ID, &img.Filename, &img.Caption, &img.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}

	return &img, nil
}
