package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	"github.com/danuartha/go-commerce-api/internal/domain/repository"
)

type BrandRepository struct {
	pool *pgxpool.Pool
}

func NewBrandRepository(pool *pgxpool.Pool) *BrandRepository {
	return &BrandRepository{pool: pool}
}

func (r *BrandRepository) Create(ctx context.Context, b *entity.Brand) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO brands (name, slug, description, logo, website, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, b.Name, b.Slug, b.Description, b.Logo, b.Website, b.IsActive)

	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isDuplicate(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *BrandRepository) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	b := &entity.Brand{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, slug, description, logo, website, is_active, created_at, updated_at
		FROM brands
		WHERE id = $1
	`, id)

	if err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.Description, &b.Logo, &b.Website,
		&b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BrandRepository) List(ctx context.Context) ([]entity.Brand, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, description, logo, website, is_active, created_at, updated_at
		FROM brands
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	brands := []entity.Brand{}
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.Description, &b.Logo, &b.Website,
			&b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *BrandRepository) Update(ctx context.Context, b *entity.Brand) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE brands SET
			name = $2, slug = $3, description = $4, logo = $5, website = $6,
			is_active = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, b.ID, b.Name, b.Slug, b.Description, b.Logo, b.Website, b.IsActive)

	if err := row.Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		if isDuplicate(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.BrandRepository = (*BrandRepository)(nil)
