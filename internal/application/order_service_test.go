package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
)

func newOrderService() (*OrderService, *productRepoMock, *userRepoMock) {
	products := newProductRepoMock()
	users := newUserRepoMock()
	orders := newOrderRepoMock(products)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewOrderService(orders, products, users, nil, logger), products, users
}

func seedBuyer(t *testing.T, users *userRepoMock) *entity.User {
	t.Helper()
	u := &entity.User{Name: "Dina", Email: "dina@example.com", Role: entity.RoleUser}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func seedStocked(t *testing.T, products *productRepoMock, name string, price int64, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:      name,
		Price:     decimal.NewFromInt(price),
		SKU:       "SKU-" + name,
		Stock:     stock,
		IsActive:  true,
		Thumbnail: name + ".jpg",
	}
	require.NoError(t, products.Create(context.Background(), p))
	return p
}

func TestPlaceOrderDecrementsStockAndComputesTotal(t *testing.T) {
	svc, products, users := newOrderService()
	ctx := context.Background()
	buyer := seedBuyer(t, users)
	p := seedStocked(t, products, "Lamp", 40, 5)

	o, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{
		Items:         []OrderItemInput{{ProductID: p.ID, Quantity: 3}},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, entity.OrderPending, o.OrderStatus)
	assert.Equal(t, entity.PaymentPending, o.PaymentStatus)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Lamp", o.Items[0].Name)
	assert.Equal(t, "Lamp.jpg", o.Items[0].Image)

	left, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, left.Stock)
}

func TestPlaceOrderInsufficientStockLeavesStockUntouched(t *testing.T) {
	svc, products, users := newOrderService()
	ctx := context.Background()
	buyer := seedBuyer(t, users)
	p := seedStocked(t, products, "Lamp", 40, 5)

	_, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: p.ID, Quantity: 6}},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	left, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, left.Stock)
}

func TestPlaceOrderMultiItemShortageIsAtomic(t *testing.T) {
	svc, products, users := newOrderService()
	ctx := context.Background()
	buyer := seedBuyer(t, users)
	a := seedStocked(t, products, "Lamp", 40, 5)
	b := seedStocked(t, products, "Desk", 90, 1)

	_, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{
		Items: []OrderItemInput{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: b.ID, Quantity: 2},
		},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	left, _ := products.GetByID(ctx, a.ID)
	assert.Equal(t, 5, left.Stock)
}

func TestPlaceOrderRejectsUnavailableProducts(t *testing.T) {
	svc, products, users := newOrderService()
	ctx := context.Background()
	buyer := seedBuyer(t, users)

	_, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: "missing", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrProductUnavailable)

	inactive := &entity.Product{Name: "Old", Price: decimal.NewFromInt(5), SKU: "SKU-Old", Stock: 10, IsActive: false}
	require.NoError(t, products.Create(ctx, inactive))

	_, err = svc.Place(ctx, buyer.ID, PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: inactive.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	svc, _, users := newOrderService()
	buyer := seedBuyer(t, users)

	_, err := svc.Place(context.Background(), buyer.ID, PlaceOrderInput{})
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestOrderSnapshotSurvivesPriceChange(t *testing.T) {
	svc, products, users := newOrderService()
	ctx := context.Background()
	buyer := seedBuyer(t, users)
	p := seedStocked(t, products, "Lamp", 40, 5)

	o, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	p.Price = decimal.NewFromInt(99)
	require.NoError(t, products.Update(ctx, p))

	got, err := svc.Get(ctx, o.ID, buyer.ID, entity.RoleUser)
	require.NoError(t, err)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(40)))
	require.NotNil(t, got.Items[0].Product)
	assert.True(t, got.Items[0].Product.Price.Equal(decimal.NewFromInt(99)))
}

func TestOrderOwnership(t *testing.T) {
	svc, products, users := newOrderService()
	ctx := context.Background()
	buyer := seedBuyer(t, users)
	other := &entity.User{Name: "Eko", Email: "eko@example.com", Role: entity.RoleUser}
	require.NoError(t, users.Create(ctx, other))
	p := seedStocked(t, products, "Lamp", 40, 5)

	o, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, o.ID, other.ID, entity.RoleUser)
	assert.ErrorIs(t, err, ErrOrderForbidden)

	got, err := svc.Get(ctx, o.ID, other.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = svc.Get(ctx, "missing", buyer.ID, entity.RoleUser)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusPartial(t *testing.T) {
	svc, products, users := newOrderService()
	ctx := context.Background()
	buyer := seedBuyer(t, users)
	p := seedStocked(t, products, "Lamp", 40, 5)

	o, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := svc.UpdateStatus(ctx, o.ID, StatusInput{PaymentStatus: "paid", TransactionID: "txn_123"})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, "txn_123", got.TransactionID)
	assert.Equal(t, entity.OrderPending, got.OrderStatus, "order status must be untouched")

	got, err = svc.UpdateStatus(ctx, o.ID, StatusInput{OrderStatus: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, got.OrderStatus)
	assert.Equal(t, entity.PaymentPaid, got.PaymentStatus)
}

func TestUpdateStatusValidation(t *testing.T) {
	svc, products, users := newOrderService()
	ctx := context.Background()
	buyer := seedBuyer(t, users)
	p := seedStocked(t, products, "Lamp", 40, 5)

	o, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, o.ID, StatusInput{OrderStatus: "teleported"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, o.ID, StatusInput{})
	assert.ErrorIs(t, err, ErrEmptyStatusUpdate)

	_, err = svc.UpdateStatus(ctx, "missing", StatusInput{PaymentStatus: "paid"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListMineUsesMinimalProductProjection(t *testing.T) {
	svc, products, users := newOrderService()
	ctx := context.Background()
	buyer := seedBuyer(t, users)
	p := seedStocked(t, products, "Lamp", 40, 5)

	placed, err := svc.Place(ctx, buyer.ID, PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Len(t, mine[0].Items, 1)

	proj := mine[0].Items[0].Product
	require.NotNil(t, proj)
	assert.Equal(t, "Lamp", proj.Name)
	assert.True(t, proj.Price.IsZero())
	assert.Empty(t, proj.SKU)

	full, err := svc.Get(ctx, placed.ID, buyer.ID, entity.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, full.Items[0].Product)
	assert.True(t, full.Items[0].Product.Price.Equal(decimal.NewFromInt(40)))
}
