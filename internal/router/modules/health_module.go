package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/danuartha/go-commerce-api/internal/interface/http"
)

// HealthModule wires liveness and readiness probes.
// GET /api/health, GET /api/health/ready

type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/health")
	grp.GET("", m.Handler.Live)
	grp.GET("/ready", m.Handler.Ready)
}
