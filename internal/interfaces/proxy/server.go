package proxy

import (
	"github.com/gin-gonic/gin"
	"github.com/secondhandshop/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// NewEngine builds the proxy's gin engine. Every request, whatever its path
// or method, reaches Handler.Serve.
func NewEngine(h *Handler, log *zap.Logger, middleware ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.HandleMethodNotAllowed = false
	engine.Use(logger.Recovery(log), logger.GinMiddleware(log))
	engine.Use(middleware...)
	engine.NoRoute(h.Serve)
	return engine
}
