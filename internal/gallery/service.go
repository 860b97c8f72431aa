package gallery

import (
	"context"
	"io"

	"bloomshop-be/internal/logger"
	"bloomshop-be/internal/storage"

	"go.uber.org/zap"
)

type Service interface {
	GetList(ctx context.Context) ([]Image, error)
	Add(ctx context.Context, imageName string, image io.Reader, caption *string) (*Image, error)
	Remove(ctx context.Context, id uint) error
}

type service struct {
	repo  Repository
	blobs storage.Store
}

func NewService(repo Repository, blobs storage.Store) Service {
	return &service{repo: repo, blobs: blobs}
}

func (s *service) GetList(ctx context.Context) ([]Image, error) {
	return s.repo.GetList(ctx)
}

func (s *service) Add(ctx context.Context, imageName string, image io.Reader, caption *string) (*Image, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Add"),
	)

	if imageName == "" || image == nil {
		return nil, ErrMissingImage
	}

	ref, err := s.blobs.Save(storage.CategoryGallery, imageName, image)
	if err != nil {
		log.Error("failed to store gallery image", zap.Error(err))
		return nil, err
	}

	img, err := s.repo.Create(ctx, ref, caption)
	if err != nil {
		if rmErr := s.blobs.Remove(storage.CategoryGallery, ref); rmErr != nil {
			log.Warn("failed to remove orphaned gallery blob", zap.Error(rmErr))
		}
		return nil, err
	}

	log.Info("gallery image added", zap.Uint("image_id", img.ID))
	return img, nil
}

func (s *service) Remove(ctx context.Context, id uint) error {
	img, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blobs.Remove(storage.CategoryGallery, img.Filename); err != nil {
		logger.FromCtx(ctx).Warn("failed to remove gallery blob",
			zap.Uint("image_id", id),
			zap.Error(err),
		)
	}

	return nil
}
