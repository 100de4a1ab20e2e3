package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptgate/console/internal/middleware"
	"github.com/promptgate/console/internal/service"
)

// CatalogHandler serves the model catalog listing
type CatalogHandler struct {
	eventService *service.EventService
}

func NewCatalogHandler(eventService *service.EventService) *CatalogHandler {
	return &CatalogHandler{eventService: eventService}
}

// ListCatalogs returns all active catalog entries
// GET /api/models
func (h *CatalogHandler) ListCatalogs(c *gin.Context) {
	catalogs, err := h.eventService.ListCatalogs(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"models": catalogs,
	})
}
