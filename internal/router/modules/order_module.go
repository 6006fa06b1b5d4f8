package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danuartha/go-commerce-api/internal/container"
	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	handlers "github.com/danuartha/go-commerce-api/internal/interface/http"
	"github.com/danuartha/go-commerce-api/internal/interface/middleware"
)

// OrderModule wires the order endpoints. Everything requires auth.
// User: POST /api/orders, GET /api/orders/my-orders, GET /api/orders/:id
// Admin: GET /api/orders, PUT /api/orders/:id/status

type OrderModule struct {
	Handler *handlers.OrderHandler
	Auth    gin.HandlerFunc
}

func NewOrderModule(h *handlers.OrderHandler, auth gin.HandlerFunc) *OrderModule {
	return &OrderModule{Handler: h, Auth: auth}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	// checkout gets its own per-user limiter
	placeLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil)

	grp := rg.Group("/orders", m.Auth)
	grp.POST("", placeLimiter, m.Handler.Create)
	grp.GET("/my-orders", m.Handler.ListMine)
	grp.GET("/:id", m.Handler.Get)

	admin := grp.Group("", middleware.RequireRoles(entity.RoleAdmin))
	admin.GET("", m.Handler.ListAll)
	admin.PUT("/:id/status", m.Handler.UpdateStatus)
}
