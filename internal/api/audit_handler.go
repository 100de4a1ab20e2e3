package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/promptgate/console/internal/audit"
	"github.com/promptgate/console/internal/middleware"
)

// AuditHandler exposes the administrative audit trail
type AuditHandler struct {
	auditLog *audit.Logger
}

func NewAuditHandler(auditLog *audit.Logger) *AuditHandler {
	return &AuditHandler{auditLog: auditLog}
}

// Recent returns the most recent audit records
// GET /api/audit?limit=50
func (h *AuditHandler) Recent(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "limit must be between 1 and 500",
				"code":  "BAD_REQUEST",
			})
			return
		}
		limit = n
	}

	records, err := h.auditLog.Recent(c.Request.Context(), limit)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

// ForEvent returns the audit records for one event
// GET /api/events/:id/audit
func (h *AuditHandler) ForEvent(c *gin.Context) {
	records, err := h.auditLog.ForEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}
