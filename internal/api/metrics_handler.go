package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptgate/console/internal/middleware"
	"github.com/promptgate/console/internal/service"
)

// MetricsHandler serves per-event usage aggregates
type MetricsHandler struct {
	metricsService *service.MetricsService
	eventService   *service.EventService
}

func NewMetricsHandler(metricsService *service.MetricsService, eventService *service.EventService) *MetricsHandler {
	return &MetricsHandler{
		metricsService: metricsService,
		eventService:   eventService,
	}
}

// GetEventMetrics returns attendee/request counts, per-model usage and a
// daily time series for one event
// GET /api/events/:id/metrics
func (h *MetricsHandler) GetEventMetrics(c *gin.Context) {
	id := c.Param("id")

	event, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
			"code":  "NOT_FOUND",
		})
		return
	}

	metrics, err := h.metricsService.EventMetrics(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
