package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	handlers "github.com/danuartha/go-commerce-api/internal/interface/http"
	"github.com/danuartha/go-commerce-api/internal/interface/middleware"
)

// BrandModule wires the catalog's brand endpoints.
// Public: GET /api/brands, GET /api/brands/:id
// Admin: POST/PUT/DELETE /api/brands...

type BrandModule struct {
	Handler *handlers.BrandHandler
	Auth    gin.HandlerFunc
}

func NewBrandModule(h *handlers.BrandHandler, auth gin.HandlerFunc) *BrandModule {
	return &BrandModule{Handler: h, Auth: auth}
}

func (m *BrandModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/brands")
	grp.GET("", m.Handler.List)
	grp.GET("/:id", m.Handler.Get)

	admin := grp.Group("", m.Auth, middleware.RequireRoles(entity.RoleAdmin))
	admin.POST("", m.Handler.Create)
	admin.PUT("/:id", m.Handler.Update)
	admin.DELETE("/:id", m.Handler.Delete)
}
