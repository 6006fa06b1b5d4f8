package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/danuartha/go-commerce-api/pkg/response"
)

type HealthHandler struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{Pool: pool, Redis: rdb}
}

// Live reports process liveness only.
func (h *HealthHandler) Live(c *gin.Context) {
	response.Message(c, "Server is running")
}

// Ready checks the backing stores. Redis is optional; Postgres is not.
func (h *HealthHandler) Ready(c *gin.Context) {
	checkCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true

	if err := h.Pool.Ping(checkCtx); err != nil {
		checks["postgres"] = "down"
		healthy = false
	} else {
		checks["postgres"] = "up"
	}

	if h.Redis != nil {
		if err := h.Redis.Ping(checkCtx).Err(); err != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}
	}

	if !healthy {
		response.Fail(c, http.StatusServiceUnavailable, "not ready", checks)
		return
	}
	response.OK(c, checks)
}
