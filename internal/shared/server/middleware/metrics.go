package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/metrics"
)

// Metrics counts requests by matched route so ids do not explode cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
	}
}
