package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/danuartha/go-commerce-api/internal/application"
	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	"github.com/danuartha/go-commerce-api/pkg/response"
	"github.com/danuartha/go-commerce-api/pkg/validation"
)

type OrderHandler struct {
	Svc    *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(svc *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Svc: svc, Logger: logger}
}

type orderItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type shippingAddressRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Address  string `json:"address" binding:"required"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	ZipCode  string `json:"zipCode" binding:"required"`
	Country  string `json:"country" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

type createOrderRequest struct {
	Items           []orderItemRequest     `json:"items" binding:"required,min=1,dive"`
	ShippingAddress shippingAddressRequest `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
}

type updateStatusRequest struct {
	OrderStatus   string `json:"orderStatus" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus string `json:"paymentStatus" binding:"omitempty,oneof=pending paid failed refunded"`
	TransactionID string `json:"transactionId"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.PlaceOrderInput{
		ShippingAddress: entity.ShippingAddress{
			FullName: req.ShippingAddress.FullName,
			Address:  req.ShippingAddress.Address,
			City:     req.ShippingAddress.City,
			State:    req.ShippingAddress.State,
			ZipCode:  req.ShippingAddress.ZipCode,
			Country:  req.ShippingAddress.Country,
			Phone:    req.ShippingAddress.Phone,
		},
		PaymentMethod: req.PaymentMethod,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, application.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	o, err := h.Svc.Place(c.Request.Context(), c.GetString("userID"), in)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrProductUnavailable):
			response.Fail(c, http.StatusNotFound, err.Error(), nil)
		case errors.Is(err, application.ErrInsufficientStock):
			response.Fail(c, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, application.ErrEmptyOrder):
			response.Fail(c, http.StatusBadRequest, "order has no items", nil)
		default:
			h.Logger.WithError(err).Error("order create failed")
			response.Fail(c, http.StatusInternalServerError, "could not place order", nil)
		}
		return
	}
	response.Created(c, o)
}

// ListMine returns the authenticated user's orders, newest first.
func (h *OrderHandler) ListMine(c *gin.Context) {
	orders, err := h.Svc.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.Logger.WithError(err).Error("order list failed")
		response.Fail(c, http.StatusInternalServerError, "could not list orders", nil)
		return
	}
	response.List(c, orders, len(orders))
}

// ListAll returns every order in the system. Admin only.
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("order list failed")
		response.Fail(c, http.StatusInternalServerError, "could not list orders", nil)
		return
	}
	response.List(c, orders, len(orders))
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.Svc.Get(c.Request.Context(), c.Param("id"), c.GetString("userID"), c.GetString("userRole"))
	if err != nil {
		switch {
		case errors.Is(err, application.ErrOrderNotFound):
			response.Fail(c, http.StatusNotFound, "order not found", nil)
		case errors.Is(err, application.ErrOrderForbidden):
			response.Fail(c, http.StatusForbidden, "not allowed to access this order", nil)
		default:
			h.Logger.WithError(err).Error("order get failed")
			response.Fail(c, http.StatusInternalServerError, "could not load order", nil)
		}
		return
	}
	response.OK(c, o)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	o, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), application.StatusInput{
		OrderStatus:   req.OrderStatus,
		PaymentStatus: req.PaymentStatus,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrOrderNotFound):
			response.Fail(c, http.StatusNotFound, "order not found", nil)
		case errors.Is(err, application.ErrInvalidStatus), errors.Is(err, application.ErrEmptyStatusUpdate):
			response.Fail(c, http.StatusBadRequest, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("order status update failed")
			response.Fail(c, http.StatusInternalServerError, "could not update order", nil)
		}
		return
	}
	response.OK(c, o)
}
