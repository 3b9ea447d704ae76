package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mrp-capacity-api/internal/service"
)

const unmatchedRoute = "unmatched"

// Metrics records request latency and status per route template. Scrapes of
// skipPaths are not recorded.
func Metrics(metricsSvc *service.MetricsService, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		// Raw paths carry order ids; only the route template is a bounded label.
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
