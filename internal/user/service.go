package user

import (
	"context"
	"strings"

	"bloomshop-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, phone, name, password string) (string, User, error)
	Login(ctx context.Context, phone, password string) (string, User, error)

	// RequestReset confirms the phone belongs to an account before the
	// reset form is shown.
	RequestReset(ctx context.Context, phone string) error
	ResetPassword(ctx context.Context, phone, newPassword string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, phone, name, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	if !ValidPhone(phone) {
		return "", User{}, ErrInvalidPhone
	}
	if !ValidPassword(password) {
		return "", User{}, ErrWeakPassword
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, phone, name, hashed, string(RoleCustomer))
	if err != nil {
		if strings.Contains(err.Error(), "users_phone_key") {
			return "", User{}, ErrPhoneExists
		}
		log.Error("failed to create user", zap.String("phone", phone), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Phone)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("user registered",
		zap.Uint("user_id", u.ID),
		zap.String("phone", phone),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, phone, password string) (string, User, error) {
	u, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Phone)
	return token, u, err
}

func (s *service) RequestReset(ctx context.Context, phone string) error {
	_, err := s.repo.FindByPhone(ctx, phone)
	return err
}

func (s *service) ResetPassword(ctx context.Context, phone, newPassword string) error {
	log := logger.FromCtx(ctx)

	if !ValidPassword(newPassword) {
		return ErrWeakPassword
	}

	u, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if CheckPasswordHash(newPassword, u.Password) {
		return ErrSamePassword
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return err
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, hashed); err != nil {
		return err
	}

	log.Info("password reset", zap.Uint("user_id", u.ID))
	return nil
}
