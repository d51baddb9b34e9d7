package server

import (
	"strconv"
	"time"

	"auction-marketplace/internal/metrics"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
		"client":  c.ClientIP(),
	}
	if len(c.Errors) > 0 {
		fields["errors"] = c.Errors.String()
	}
	utils.Info("HTTP Request", fields)
}

// MetricsMiddleware records request counts and latency per matched route
func MetricsMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	metrics.HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	metrics.HTTPLatency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
}
