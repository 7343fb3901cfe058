package handlers

import (
	"github.com/gin-gonic/gin"

	"quarryledger/internal/domain/audit"
)

// AuditHandler handles audit trail endpoints.
type AuditHandler struct {
	*BaseHandler
	recorder *audit.Recorder
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{BaseHandler: base, recorder: recorder}
}

// List handles GET /audit-logs. Admin only; the route carries the
// guard.
func (h *AuditHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 100)

	entries, err := h.recorder.List(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entries)
}
