package repository

import (
	"context"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
)

// StatusUpdate carries the fields of an order status write. Nil fields are
// left unchanged.
type StatusUpdate struct {
	OrderStatus   *entity.OrderStatus
	PaymentStatus *entity.PaymentStatus
	TransactionID *string
}

type OrderRepository interface {
	// Create persists the order, its item snapshots, and one conditional stock
	// decrement per item inside a single transaction. A decrement that matches
	// no row (stock below the requested quantity) aborts the transaction and
	// returns ErrInsufficientStock, leaving stock untouched for every item.
	Create(ctx context.Context, o *entity.Order) error
	// GetByID returns the order with item snapshots, live product records and
	// the user reference expanded.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Order, error)
	ListAll(ctx context.Context) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id string, upd StatusUpdate) (*entity.Order, error)
}
