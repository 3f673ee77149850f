package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockline/stockline/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route, so probes
// against random paths share one series.
const unmatchedRoute = "unmatched"

// HTTPMetrics records request count, latency and in-flight requests keyed by
// the route pattern.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.RequestsInFlight.Inc()
		defer metrics.RequestsInFlight.Dec()

		start := time.Now()
		c.Next()

		route := routeLabel(c)
		status := strconv.Itoa(c.Writer.Status())
		metrics.RequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}

func routeLabel(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}

	return unmatchedRoute
}
