package server

import (
	"strconv"
	"time"

	"fanmeet-engine/internal/metrics"
	"fanmeet-engine/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"route":   c.FullPath(),
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// PrometheusMiddleware observes the request duration by method and status code
func PrometheusMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next()

	metrics.HTTPRequestDuration.
		WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).
		Observe(time.Since(start).Seconds())
}
