package user

import (
	"context"
	"database/sql"
	"errors"

	"bloomshop-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, phone, name, password, role string) (User, error)
	FindByPhone(ctx context.Context, phone string) (User, error)
	UpdatePassword(ctx context.Context, userID uint, password string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, phone, name, password, role string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (phone, name, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, phone, name, password, role, created_at
	`, phone, name, password, role).Scan(
		&u.ID, &u.Phone, &u.Name, &u.Password, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("phone", phone),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, phone, name, password, role, created_at
		FROM users
		WHERE phone = $1
	`, phone).Scan(
		&u.ID, &u.Phone, &u.Name, &u.Password, &u.Role, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}

	return u, err
}

func (r *repository) UpdatePassword(ctx context.Context, userID uint, password string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password = $1 WHERE id = $2
	`, password, userID)
	if err != nil {
		return err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
