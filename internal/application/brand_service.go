package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	repo "github.com/danuartha/go-commerce-api/internal/domain/repository"
)

var ErrBrandNotFound = errors.New("brand not found")

type BrandService struct {
	Brands repo.BrandRepository
	Logger *logrus.Logger
}

func NewBrandService(brands repo.BrandRepository, logger *logrus.Logger) *BrandService {
	return &BrandService{Brands: brands, Logger: logger}
}

func (s *BrandService) List(ctx context.Context) ([]entity.Brand, error) {
	return s.Brands.List(ctx)
}

func (s *BrandService) Get(ctx context.Context, id string) (*entity.Brand, error) {
	b, err := s.Brands.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BrandService) Create(ctx context.Context, b *entity.Brand) error {
	if err := s.Brands.Create(ctx, b); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (s *BrandService) Update(ctx context.Context, b *entity.Brand) error {
	if err := s.Brands.Update(ctx, b); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrBrandNotFound
		case errors.Is(err, repo.ErrDuplicate):
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (s *BrandService) Delete(ctx context.Context, id string) error {
	if err := s.Brands.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBrandNotFound
		}
		return err
	}
	return nil
}
