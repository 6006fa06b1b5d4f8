package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	repo "github.com/danuartha/go-commerce-api/internal/domain/repository"
	"github.com/danuartha/go-commerce-api/pkg/helpers"
	"github.com/danuartha/go-commerce-api/pkg/mailer"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderForbidden     = errors.New("not allowed to access this order")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrEmptyStatusUpdate  = errors.New("no status fields to update")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

type OrderItemInput struct {
	ProductID string
	Quantity  int
}

type PlaceOrderInput struct {
	Items           []OrderItemInput
	ShippingAddress entity.ShippingAddress
	PaymentMethod   string
}

type StatusInput struct {
	OrderStatus   string
	PaymentStatus string
	TransactionID string
}

type OrderService struct {
	Orders   repo.OrderRepository
	Products repo.ProductRepository
	Users    repo.UserRepository
	Rabbit   *helpers.RabbitPublisher
	Logger   *logrus.Logger
}

func NewOrderService(orders repo.OrderRepository, products repo.ProductRepository, users repo.UserRepository, rabbit *helpers.RabbitPublisher, logger *logrus.Logger) *OrderService {
	return &OrderService{
		Orders:   orders,
		Products: products,
		Users:    users,
		Rabbit:   rabbit,
		Logger:   logger,
	}
}

// Place creates an order for userID. Item names, prices and images are
// snapshotted from the current product records and the total is computed
// server-side; client-sent prices are never trusted. Stock is decremented
// atomically with the insert, so a concurrent order racing for the last unit
// loses cleanly.
func (s *OrderService) Place(ctx context.Context, userID string, in PlaceOrderInput) (*entity.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	o := &entity.Order{
		UserID:          userID,
		ShippingAddress: in.ShippingAddress,
		PaymentStatus:   entity.PaymentPending,
		OrderStatus:     entity.OrderPending,
		PaymentMethod:   in.PaymentMethod,
	}

	total := decimal.Zero
	for _, it := range in.Items {
		p, err := s.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, it.ProductID)
			}
			return nil, err
		}
		if !p.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, it.ProductID)
		}
		if p.Stock < it.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
		}
		o.Items = append(o.Items, entity.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
			Image:     p.MainImage(),
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	o.TotalAmount = total

	if err := s.Orders.Create(ctx, o); err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"order_id": o.ID,
		"user_id":  userID,
		"total":    o.TotalAmount.String(),
	}).Info("order placed")

	s.publishOrderJob(ctx, o)

	return s.Orders.GetByID(ctx, o.ID)
}

// publishOrderJob enqueues the confirmation email job. Failures are logged and
// swallowed; the order is already committed.
func (s *OrderService) publishOrderJob(ctx context.Context, o *entity.Order) {
	if s.Rabbit == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, o.UserID)
	if err != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("order job user lookup failed")
		return
	}
	job := mailer.OrderJob{
		OrderID:     o.ID,
		UserID:      o.UserID,
		Email:       u.Email,
		Name:        u.Name,
		TotalAmount: o.TotalAmount.String(),
	}
	for _, it := range o.Items {
		job.Items = append(job.Items, mailer.OrderItemLine{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price.String(),
		})
	}
	if err := s.Rabbit.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("order job publish failed")
	}
}

// Get returns the order. Non-admin callers may only read their own orders; a
// foreign order yields ErrOrderForbidden, not ErrOrderNotFound, so an admin
// tool can tell the cases apart.
func (s *OrderService) Get(ctx context.Context, orderID, requesterID string, requesterRole string) (*entity.Order, error) {
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if requesterRole != entity.RoleAdmin && o.UserID != requesterID {
		return nil, ErrOrderForbidden
	}
	return o, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID string) ([]entity.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]entity.Order, error) {
	return s.Orders.ListAll(ctx)
}

// UpdateStatus applies a partial status update. Either status may move to any
// valid enum value independently of the other; the endpoint is the payment
// webhook's write path as much as the fulfilment dashboard's.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, in StatusInput) (*entity.Order, error) {
	upd := repo.StatusUpdate{}
	if in.OrderStatus != "" {
		v := entity.OrderStatus(in.OrderStatus)
		if !v.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.OrderStatus)
		}
		upd.OrderStatus = &v
	}
	if in.PaymentStatus != "" {
		v := entity.PaymentStatus(in.PaymentStatus)
		if !v.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.PaymentStatus)
		}
		upd.PaymentStatus = &v
	}
	if in.TransactionID != "" {
		upd.TransactionID = &in.TransactionID
	}
	if upd.OrderStatus == nil && upd.PaymentStatus == nil && upd.TransactionID == nil {
		return nil, ErrEmptyStatusUpdate
	}

	o, err := s.Orders.UpdateStatus(ctx, orderID, upd)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}
