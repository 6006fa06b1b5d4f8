package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	"github.com/danuartha/go-commerce-api/internal/domain/repository"
)

const productColumns = `
	p.id, p.name, p.description, p.short_description, p.price, p.compare_at_price,
	p.sku, p.category_id, p.subcategory, p.brand, p.images, p.thumbnail, p.stock,
	p.is_active, p.is_affiliate, p.affiliate_link, p.tags, p.rating, p.review_count,
	p.created_at, p.updated_at,
	c.id, c.name, c.slug`

// sortClauses whitelists the accepted sort parameters. A leading dash means
// descending, mirroring the query string convention.
var sortClauses = map[string]string{
	"name":       "p.name ASC",
	"price":      "p.price ASC",
	"-price":     "p.price DESC",
	"rating":     "p.rating DESC",
	"createdAt":  "p.created_at ASC",
	"-createdAt": "p.created_at DESC",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards in user-supplied search input.
func escapeLike(s string) string { return likeEscaper.Replace(s) }

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{}
	var catID, catName, catSlug *string
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.ShortDescription, &p.Price, &p.CompareAtPrice,
		&p.SKU, &p.CategoryID, &p.Subcategory, &p.Brand, &p.Images, &p.Thumbnail, &p.Stock,
		&p.IsActive, &p.IsAffiliate, &p.AffiliateLink, &p.Tags, &p.Rating, &p.ReviewCount,
		&p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catSlug,
	)
	if err != nil {
		return nil, err
	}
	if catID != nil {
		p.Category = &entity.CategoryRef{ID: *catID, Name: *catName, Slug: *catSlug}
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (
			name, description, short_description, price, compare_at_price, sku,
			category_id, subcategory, brand, images, thumbnail, stock,
			is_active, is_affiliate, affiliate_link, tags, rating, review_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at, updated_at
	`,
		p.Name, p.Description, p.ShortDescription, p.Price, p.CompareAtPrice, p.SKU,
		p.CategoryID, p.Subcategory, p.Brand, p.Images, p.Thumbnail, p.Stock,
		p.IsActive, p.IsAffiliate, p.AffiliateLink, p.Tags, p.Rating, p.ReviewCount,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isDuplicate(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, int, error) {
	where := []string{"1=1"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ActiveOnly {
		where = append(where, "p.is_active = true")
	}
	if f.CategoryID != "" {
		where = append(where, "p.category_id = "+arg(f.CategoryID))
	}
	if f.Search != "" {
		n := arg(escapeLike(f.Search))
		tag := arg(f.Search)
		where = append(where, fmt.Sprintf(
			`(p.name ILIKE '%%' || %s || '%%' ESCAPE '\' OR p.description ILIKE '%%' || %s || '%%' ESCAPE '\' OR %s = ANY(p.tags))`,
			n, n, tag,
		))
	}
	if f.MinPrice != nil {
		where = append(where, "p.price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "p.price <= "+arg(*f.MaxPrice))
	}
	if f.IsAffiliate != nil {
		where = append(where, "p.is_affiliate = "+arg(*f.IsAffiliate))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products p WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	order, ok := sortClauses[f.Sort]
	if !ok {
		order = sortClauses["-createdAt"]
	}

	query := fmt.Sprintf(`
		SELECT`+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE %s
		ORDER BY %s
		LIMIT %s OFFSET %s
	`, cond, order, arg(f.Limit), arg(f.Offset()))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE products SET
			name = $2, description = $3, short_description = $4, price = $5,
			compare_at_price = $6, sku = $7, category_id = $8, subcategory = $9,
			brand = $10, images = $11, thumbnail = $12, stock = $13, is_active = $14,
			is_affiliate = $15, affiliate_link = $16, tags = $17, rating = $18,
			review_count = $19, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`,
		p.ID, p.Name, p.Description, p.ShortDescription, p.Price,
		p.CompareAtPrice, p.SKU, p.CategoryID, p.Subcategory,
		p.Brand, p.Images, p.Thumbnail, p.Stock, p.IsActive,
		p.IsAffiliate, p.AffiliateLink, p.Tags, p.Rating,
		p.ReviewCount,
	)
	if err := row.Scan(&p.UpdatedAt); err != nil {
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

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
