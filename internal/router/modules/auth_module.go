package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danuartha/go-commerce-api/internal/container"
	handlers "github.com/danuartha/go-commerce-api/internal/interface/http"
	"github.com/danuartha/go-commerce-api/internal/interface/middleware"
)

// AuthModule wires the auth endpoints.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me

type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// tighter limits on the credential endpoints
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	grp := rg.Group("/auth")
	grp.POST("/register", registerLimiter, m.Handler.Register)
	grp.POST("/login", loginLimiter, m.Handler.Login)
	grp.GET("/me", m.Auth, m.Handler.Me)
}
