package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Ping answers the basic reachability check.
func (h *HealthHandler) Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(200, utils.H{
		"status":  "ok",
		"message": "pong",
	})
}

// Readiness verifies the persistence store is reachable.
func (h *HealthHandler) Readiness(ctx context.Context, c *app.RequestContext) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(pingCtx); err != nil {
		c.JSON(503, utils.H{
			"status":   "not_ready",
			"database": "unhealthy",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(200, utils.H{
		"status":   "ready",
		"database": "healthy",
	})
}

// Liveness reports the process is up.
func (h *HealthHandler) Liveness(ctx context.Context, c *app.RequestContext) {
	c.JSON(200, utils.H{
		"status": "alive",
	})
}
