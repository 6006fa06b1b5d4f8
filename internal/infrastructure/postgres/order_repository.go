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

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts the order, its item snapshots and the per-item stock
// decrements in one transaction. The decrement is conditional on sufficient
// stock; a miss rolls the whole order back so no partial reservation is ever
// visible to concurrent orders.
func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_amount, shipping_address, payment_status, order_status, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, o.UserID, o.TotalAmount, o.ShippingAddress, o.PaymentStatus, o.OrderStatus, o.PaymentMethod)
	if err := row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, name, price, quantity, image)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, o.ID, it.ProductID, it.Name, it.Price, it.Quantity, it.Image); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}

		ct, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $2, updated_at = now()
			WHERE id = $1 AND stock >= $2
		`, it.ProductID, it.Quantity)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return repository.ErrInsufficientStock
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	o := &entity.Order{}
	var txnID *string
	var userName, userEmail *string
	err := row.Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.ShippingAddress,
		&o.PaymentStatus, &o.OrderStatus, &o.PaymentMethod, &txnID,
		&o.CreatedAt, &o.UpdatedAt,
		&userName, &userEmail,
	)
	if err != nil {
		return nil, err
	}
	if txnID != nil {
		o.TransactionID = *txnID
	}
	if userName != nil {
		o.User = &entity.UserRef{ID: o.UserID, Name: *userName, Email: *userEmail}
	}
	return o, nil
}

const orderColumns = `
	o.id, o.user_id, o.total_amount, o.shipping_address,
	o.payment_status, o.order_status, o.payment_method, o.transaction_id,
	o.created_at, o.updated_at,
	u.name, u.email`

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+orderColumns+`
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	orders := []entity.Order{*o}
	if err := r.loadItems(ctx, orders, true); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	return r.list(ctx, "WHERE o.user_id = $1", userID)
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]entity.Order, error) {
	return r.list(ctx, "")
}

func (r *OrderRepository) list(ctx context.Context, cond string, args ...any) ([]entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+orderColumns+`
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		`+cond+`
		ORDER BY o.created_at DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, orders, false); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems attaches item snapshots and the live product records to the given
// orders. List reads carry a minimal product projection (name and images);
// get-by-id loads the full record. Products deleted since the order was placed
// simply stay nil on the item; the snapshot still carries name, price and
// image.
func (r *OrderRepository) loadItems(ctx context.Context, orders []entity.Order, full bool) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		byID[orders[i].ID] = &orders[i]
	}

	rows, err := r.pool.Query(ctx, `
		SELECT order_id, product_id, name, price, quantity, image
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	productIDs := map[string]bool{}
	for rows.Next() {
		var orderID string
		var it entity.OrderItem
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.Price, &it.Quantity, &it.Image); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		o := byID[orderID]
		o.Items = append(o.Items, it)
		productIDs[it.ProductID] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	products, err := r.productsByID(ctx, productIDs, full)
	if err != nil {
		return err
	}
	for i := range orders {
		for j := range orders[i].Items {
			it := &orders[i].Items[j]
			it.Product = products[it.ProductID]
		}
	}
	return nil
}

func (r *OrderRepository) productsByID(ctx context.Context, idSet map[string]bool, full bool) (map[string]*entity.Product, error) {
	if len(idSet) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	out := make(map[string]*entity.Product, len(ids))

	if !full {
		rows, err := r.pool.Query(ctx, `
			SELECT id, name, images FROM products WHERE id = ANY($1)
		`, ids)
		if err != nil {
			return nil, fmt.Errorf("load order products: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			p := &entity.Product{}
			if err := rows.Scan(&p.ID, &p.Name, &p.Images); err != nil {
				return nil, fmt.Errorf("scan order product: %w", err)
			}
			out[p.ID] = p
		}
		return out, rows.Err()
	}

	rows, err := r.pool.Query(ctx, `
		SELECT`+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("load order products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order product: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, upd repository.StatusUpdate) (*entity.Order, error) {
	var orderStatus, paymentStatus *string
	if upd.OrderStatus != nil {
		s := string(*upd.OrderStatus)
		orderStatus = &s
	}
	if upd.PaymentStatus != nil {
		s := string(*upd.PaymentStatus)
		paymentStatus = &s
	}

	ct, err := r.pool.Exec(ctx, `
		UPDATE orders SET
			order_status = COALESCE($2, order_status),
			payment_status = COALESCE($3, payment_status),
			transaction_id = COALESCE($4, transaction_id),
			updated_at = now()
		WHERE id = $1
	`, id, orderStatus, paymentStatus, upd.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
