package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	repo "github.com/danuartha/go-commerce-api/internal/domain/repository"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugTaken        = errors.New("slug already in use")
)

type CategoryService struct {
	Categories repo.CategoryRepository
	Logger     *logrus.Logger
}

func NewCategoryService(categories repo.CategoryRepository, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Categories: categories, Logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	return s.Categories.ListActive(ctx)
}

// Get returns the category by id. On the public path inactive categories are
// indistinguishable from missing ones.
func (s *CategoryService) Get(ctx context.Context, id string, includeInactive bool) (*entity.Category, error) {
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if !includeInactive && !c.IsActive {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	c, err := s.Categories.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if !c.IsActive {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, c *entity.Category) error {
	if err := s.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (s *CategoryService) Update(ctx context.Context, c *entity.Category) error {
	if err := s.Categories.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repo.ErrDuplicate):
			return ErrSlugTaken
		}
		return err
	}
	return nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
