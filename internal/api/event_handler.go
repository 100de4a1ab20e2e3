package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptgate/console/internal/middleware"
	"github.com/promptgate/console/internal/models"
	"github.com/promptgate/console/internal/service"
)

// EventHandler handles event administration endpoints
type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEvent creates a new event owned by the caller
// POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
			"code":  "BAD_REQUEST",
		})
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvent returns one event with its assigned catalogs
// GET /api/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
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

	c.JSON(http.StatusOK, event)
}

// ListEvents returns the caller's events, active first
// GET /api/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.ListOwnerEvents(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
	})
}

// UpdateEvent overwrites all mutable fields of an event
// PUT /api/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id := c.Param("id")

	var input models.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
			"code":  "BAD_REQUEST",
		})
		return
	}

	event, err := h.eventService.UpdateEvent(c.Request.Context(), id, input)
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

	c.JSON(http.StatusOK, event)
}

// UpdateModels replaces the event's assigned model catalog set
// PUT /api/events/:id/models
func (h *EventHandler) UpdateModels(c *gin.Context) {
	id := c.Param("id")

	var body struct {
		ModelIDs []string `json:"model_ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
			"code":  "BAD_REQUEST",
		})
		return
	}

	event, err := h.eventService.UpdateModelsForEvent(c.Request.Context(), id, body.ModelIDs)
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

	c.JSON(http.StatusOK, event)
}
