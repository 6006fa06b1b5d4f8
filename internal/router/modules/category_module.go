package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	handlers "github.com/danuartha/go-commerce-api/internal/interface/http"
	"github.com/danuartha/go-commerce-api/internal/interface/middleware"
)

// CategoryModule wires the catalog's category endpoints.
// Public: GET /api/categories, GET /api/categories/:id, GET /api/categories/slug/:slug
// Admin: POST/PUT/DELETE /api/categories...

type CategoryModule struct {
	Handler *handlers.CategoryHandler
	Auth    gin.HandlerFunc
}

func NewCategoryModule(h *handlers.CategoryHandler, auth gin.HandlerFunc) *CategoryModule {
	return &CategoryModule{Handler: h, Auth: auth}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/categories")
	grp.GET("", m.Handler.List)
	grp.GET("/:id", m.Handler.Get)
	grp.GET("/slug/:slug", m.Handler.GetBySlug)

	admin := grp.Group("", m.Auth, middleware.RequireRoles(entity.RoleAdmin))
	admin.POST("", m.Handler.Create)
	admin.PUT("/:id", m.Handler.Update)
	admin.DELETE("/:id", m.Handler.Delete)
}
