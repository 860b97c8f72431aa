package message

import (
	"context"
	"database/sql"
)

type Repository interface {
	Create(ctx context.Context, input NewMessageInput) (*Message, error)
	GetList(ctx context.Context) ([]Message, error)
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, input NewMessageInput) (*Message, error) {
	var m Message
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO messages (name, phone, email, subject, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, phone, email, subject, content, is_read, created_at
	`, input.Name, input.Phone, input.Email, input.Subject, input.Content).Scan(
		&m.ID, &m.Name, &m.Phone, &m.Email, &m.Subject, &m.Content, &m.IsRead, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetList(ctx context.Context) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, email, subject, content, is_read, created_at
		FROM messages
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Email, &m.Subject, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

func (r *repository) MarkRead(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE messages SET is_read = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrMessageNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM messages WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrMessageNotFound
	}

	return nil
}
