package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akshat1423/scaleup-backend/internal/metrics"
)

// Metrics records request counts and latencies per route template
func Metrics(registry *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		registry.HTTPRequestsTotal.WithLabelValues(
			endpoint,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		registry.HTTPRequestDuration.WithLabelValues(
			endpoint,
			c.Request.Method,
		).Observe(time.Since(start).Seconds())
	}
}
