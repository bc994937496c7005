package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/secondhandshop/backend/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	Enabled   bool
	SkipPaths []string
}

// Profiling attaches route and method pprof labels to each request so
// Pyroscope profiles can be filtered per endpoint. Labels use the route
// pattern, never the raw path.
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if _, ok := skip[c.Request.URL.Path]; ok || route == "" {
			c.Next()
			return
		}

		labels := telemetry.HTTPRequestLabels(route, c.Request.Method)
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
