package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promptgate/console/internal/monitoring"
	"github.com/promptgate/console/pkg/logger"
)

// RequestLogger logs all HTTP requests with structured logging and
// records Prometheus request metrics
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = path
		}
		monitoring.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		monitoring.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"status":     status,
			"latency_ms": latency.Milliseconds(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}
		if userID, exists := c.Get("user_id"); exists {
			fields["user_id"] = userID
		}

		message := "HTTP request"
		if status >= 500 {
			logger.Error(message, nil, fields)
		} else if status >= 400 {
			logger.Warn(message, fields)
		} else {
			logger.Info(message, fields)
		}
	}
}
