package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/secondhandshop/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/metric"
)

type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(meter,
		"http_server_request_total",
		"Total number of HTTP requests",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Buckets:     telemetry.HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &httpMetrics{requestTotal: requestTotal, requestDuration: requestDuration}, nil
}

// HTTPMetrics counts requests and records latency per route, method and
// status. A nil or disabled meter provider gives a pass-through middleware.
func HTTPMetrics(mp *telemetry.MeterProvider) (gin.HandlerFunc, error) {
	if mp == nil || !mp.IsEnabled() {
		return func(c *gin.Context) { c.Next() }, nil
	}
	m, err := newHTTPMetrics(mp.Meter("secondhandshop/http"))
	if err != nil {
		return nil, err
	}
	return httpMetricsHandler(m), nil
}

func httpMetricsHandler(m *httpMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx := c.Request.Context()
		m.requestTotal.Inc(ctx,
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(route),
			telemetry.AttrHTTPStatusCode.Int(c.Writer.Status()),
		)
		m.requestDuration.RecordDuration(ctx, time.Since(start),
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(route),
		)
	}
}
