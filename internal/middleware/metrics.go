package middleware

import (
	"strconv"

	"github.com/SscSPs/mandi_ledger_app/internal/metrics"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware counts requests by matched route, method and status.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
