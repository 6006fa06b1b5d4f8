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

const categoryColumns = `
	c.id, c.name, c.slug, c.description, c.image, c.parent_id, c.is_active,
	c.created_at, c.updated_at,
	pc.id, pc.name, pc.slug`

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	c := &entity.Category{}
	var parentID, parentName, parentSlug *string
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.ParentID, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
		&parentID, &parentName, &parentSlug,
	)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		c.Parent = &entity.CategoryRef{ID: *parentID, Name: *parentName, Slug: *parentSlug}
	}
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, slug, description, image, parent_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, c.Name, c.Slug, c.Description, c.Image, c.ParentID, c.IsActive)

	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isDuplicate(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *CategoryRepository) getOne(ctx context.Context, cond string, v any) (*entity.Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+categoryColumns+`
		FROM categories c
		LEFT JOIN categories pc ON pc.id = c.parent_id
		WHERE `+cond, v)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, "c.id = $1", id)
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.getOne(ctx, "c.slug = $1", slug)
}

func (r *CategoryRepository) ListActive(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+categoryColumns+`
		FROM categories c
		LEFT JOIN categories pc ON pc.id = c.parent_id
		WHERE c.is_active = true
		ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []entity.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE categories SET
			name = $2, slug = $3, description = $4, image = $5, parent_id = $6,
			is_active = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`, c.ID, c.Name, c.Slug, c.Description, c.Image, c.ParentID, c.IsActive)

	if err := row.Scan(&c.UpdatedAt); err != nil {
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

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
