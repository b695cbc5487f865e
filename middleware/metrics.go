package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"paywall-backend/metrics"
)

// Metrics records latency and status of every request under its route
// template so ids do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
