package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

// Metrics records request count, latency and error class per route. Unmatched
// requests share the "unmatched" path label so arbitrary URLs do not create
// new series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		statusLabel := strconv.Itoa(status)

		m.RequestDuration.WithLabelValues(c.Request.Method, path, statusLabel).Observe(time.Since(start).Seconds())
		m.RequestTotal.WithLabelValues(c.Request.Method, path, statusLabel).Inc()

		switch {
		case status >= 500:
			m.ErrorTotal.WithLabelValues(c.Request.Method, path, "server").Inc()
		case status >= 400:
			m.ErrorTotal.WithLabelValues(c.Request.Method, path, "client").Inc()
		}
	}
}
