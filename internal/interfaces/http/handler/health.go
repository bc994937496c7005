package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"github.com/secondhandshop/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// DatabasePinger reports database reachability
type DatabasePinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler answers liveness probes
type HealthHandler struct {
	db      DatabasePinger
	timeout time.Duration
}

// NewHealthHandler creates a HealthHandler
func NewHealthHandler(db DatabasePinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// Check godoc
// @Summary      Health check
// @Description  Reports service and database status
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Failure      503 {object} dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logger.GetGinLogger(c).Warn("Health check database ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "down"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}
