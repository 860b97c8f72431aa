package product

import (
	"context"
	"io"

	"bloomshop-be/internal/logger"
	"bloomshop-be/internal/storage"

	"go.uber.org/zap"
)

// Service defines the catalog business logic.
type Service interface {
	GetList(ctx context.Context, search string) ([]Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, input NewProductInput, imageName string, image io.Reader) (*Product, error)
	UpdatePrice(ctx context.Context, id uint, price float64) error
	UpdateStock(ctx context.Context, id uint, stock int) error
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo  Repository
	blobs storage.Store
}

func NewService(repo Repository, blobs storage.Store) Service {
	return &service{repo: repo, blobs: blobs}
}

func (s *service) GetList(ctx context.Context, search string) ([]Product, error) {
	return s.repo.GetList(ctx, search)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input NewProductInput, imageName string, image io.Reader) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "Create"),
		zap.String("name", input.Name),
	)

	if input.Name == "" || input.Description == "" || (imageName == "" || image == nil) {
		return nil, ErrMissingFields
	}
	if input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	ref, err := s.blobs.Save(storage.CategoryProduct, imageName, image)
	if err != nil {
		log.Error("failed to store product image", zap.Error(err))
		return nil, err
	}
	input.ImageFilename = ref

	p, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		// Orphaned image cleanup, best effort.
		_ = s.blobs.Remove(storage.CategoryProduct, ref)
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return p, nil
}

func (s *service) UpdatePrice(ctx context.Context, id uint, price float64) error {
	if price < 0 {
		return ErrInvalidPrice
	}
	return s.repo.UpdatePrice(ctx, id, price)
}

func (s *service) UpdateStock(ctx context.Context, id uint, stock int) error {
	if stock < 0 {
		return ErrInvalidStock
	}
	return s.repo.UpdateStock(ctx, id, stock)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if p.ImageFilename != nil {
		if err := s.blobs.Remove(storage.CategoryProduct, *p.ImageFilename); err != nil {
			logger.FromCtx(ctx).Warn("failed to remove product image",
				zap.Uint("product_id", id),
				zap.Error(err),
			)
		}
	}

	return nil
}
