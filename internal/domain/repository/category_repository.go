package repository

import (
	"context"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	// ListActive returns active categories sorted by name, with the parent
	// reference expanded.
	ListActive(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
}

type BrandRepository interface {
	Create(ctx context.Context, b *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	// List returns every brand sorted by name; brands are not filtered by the
	// activity flag.
	List(ctx context.Context) ([]entity.Brand, error)
	Update(ctx context.Context, b *entity.Brand) error
	Delete(ctx context.Context, id string) error
}
