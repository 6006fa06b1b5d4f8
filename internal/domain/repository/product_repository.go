package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
)

// ProductFilter narrows the product listing. Zero values mean "no filter";
// ActiveOnly is set on the public listing path.
type ProductFilter struct {
	Page        int
	Limit       int
	CategoryID  string
	Search      string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	IsAffiliate *bool
	Sort        string
	ActiveOnly  bool
}

// Offset returns the row offset for the current page.
func (f ProductFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit
}

type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, f ProductFilter) ([]entity.Product, int, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}
