package settings

import (
	"context"
	"io"

	"bloomshop-be/internal/logger"
	"bloomshop-be/internal/storage"

	"go.uber.org/zap"
)

type Service interface {
	GetContact(ctx context.Context) (*ContactInfo, error)
	UpdateContact(ctx context.Context, info ContactInfo) error
	GetPayment(ctx context.Context) (*PaymentInfo, error)

	// UpdatePayment overwrites the bank details; when a new QR image is
	// supplied the previous one is replaced on disk.
	UpdatePayment(ctx context.Context, info PaymentInfo, qrName string, qr io.Reader) error
}

type service struct {
	repo  Repository
	blobs storage.Store
}

func NewService(repo Repository, blobs storage.Store) Service {
	return &service{repo: repo, blobs: blobs}
}

func (s *service) GetContact(ctx context.Context) (*ContactInfo, error) {
	return s.repo.GetContact(ctx)
}

func (s *service) UpdateContact(ctx context.Context, info ContactInfo) error {
	if err := s.repo.UpdateContact(ctx, info); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("contact info updated")
	return nil
}

func (s *service) GetPayment(ctx context.Context) (*PaymentInfo, error) {
	return s.repo.GetPayment(ctx)
}

func (s *service) UpdatePayment(ctx context.Context, info PaymentInfo, qrName string, qr io.Reader) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdatePayment"),
	)

	current, err := s.repo.GetPayment(ctx)
	if err != nil {
		return err
	}

	info.QRFilename = current.QRFilename
	if qr != nil && qrName != "" {
		ref, err := s.blobs.Save(storage.CategoryPayment, qrName, qr)
		if err != nil {
			log.Error("failed to store payment QR", zap.Error(err))
			return err
		}

		if current.QRFilename != nil && *current.QRFilename != ref {
			if rmErr := s.blobs.Remove(storage.CategoryPayment, *current.QRFilename); rmErr != nil {
				log.Warn("failed to remove replaced QR image", zap.Error(rmErr))
			}
		}
		info.QRFilename = &ref
	}

	if err := s.repo.UpdatePayment(ctx, info); err != nil {
		return err
	}

	log.Info("payment info updated", zap.Bool("qr_replaced", qr != nil))
	return nil
}
