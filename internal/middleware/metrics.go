package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Chekke24/challenger-premios-backend/internal/metrics"
)

// Metrics records every request under its route pattern, so /publicaciones/:id
// stays one series regardless of id.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
