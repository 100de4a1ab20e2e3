package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusHandler exposes the default registry for scraping
type PrometheusHandler struct{}

func NewPrometheusHandler() *PrometheusHandler {
	return &PrometheusHandler{}
}

// MetricsEndpoint bridges promhttp into the gin chain
// GET /prometheus
func (h *PrometheusHandler) MetricsEndpoint(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
