package message

import (
	"context"

	"bloomshop-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input NewMessageInput) (*Message, error)
	GetList(ctx context.Context) ([]Message, error)
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input NewMessageInput) (*Message, error) {
	if input.Name == "" || input.Phone == "" || input.Content == "" {
		return nil, ErrMissingFields
	}

	m, err := s.repo.Create(ctx, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to store contact message", zap.Error(err))
		return nil, err
	}

	logger.FromCtx(ctx).Info("contact message received", zap.Uint("message_id", m.ID))
	return m, nil
}

func (s *service) GetList(ctx context.Context) ([]Message, error) {
	return s.repo.GetList(ctx)
}

func (s *service) MarkRead(ctx context.Context, id uint) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
