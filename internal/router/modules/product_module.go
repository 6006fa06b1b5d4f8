package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	handlers "github.com/danuartha/go-commerce-api/internal/interface/http"
	"github.com/danuartha/go-commerce-api/internal/interface/middleware"
)

// ProductModule wires the catalog's product endpoints.
// Public: GET /api/products, GET /api/products/search, GET /api/products/:id
// Admin: POST/PUT/DELETE /api/products..., POST /api/products/:id/image

type ProductModule struct {
	Handler *handlers.ProductHandler
	Auth    gin.HandlerFunc
}

func NewProductModule(h *handlers.ProductHandler, auth gin.HandlerFunc) *ProductModule {
	return &ProductModule{Handler: h, Auth: auth}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/products")
	grp.GET("", m.Handler.List)
	grp.GET("/search", m.Handler.Search)
	grp.GET("/:id", m.Handler.Get)

	admin := grp.Group("", m.Auth, middleware.RequireRoles(entity.RoleAdmin))
	admin.POST("", m.Handler.Create)
	admin.PUT("/:id", m.Handler.Update)
	admin.DELETE("/:id", m.Handler.Delete)
	admin.POST("/:id/image", m.Handler.UploadImage)
}
