package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"quarryledger/internal/domain/reports"
)

// ReportsHandler handles reporting endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// Dashboard handles GET /reports/dashboard.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, stats)
}

// Monthly handles GET /reports/monthly.
func (h *ReportsHandler) Monthly(c *gin.Context) {
	now := time.Now()
	year := h.ParseIntQuery(c, "year", now.Year())
	month := h.ParseIntQuery(c, "month", int(now.Month()))
	clerkSearch := c.Query("clerk")

	analytics, err := h.service.Monthly(c.Request.Context(), year, month, clerkSearch)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, analytics)
}

// Leaderboard handles GET /reports/leaderboard. Admin only; the route
// carries the guard.
func (h *ReportsHandler) Leaderboard(c *gin.Context) {
	stats, err := h.service.Leaderboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, stats)
}

// PersonalSummary handles GET /reports/my-sales.
func (h *ReportsHandler) PersonalSummary(c *gin.Context) {
	summary, err := h.service.PersonalSummary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

// CustomerBalances handles GET /reports/customer-balances.
func (h *ReportsHandler) CustomerBalances(c *gin.Context) {
	balances, err := h.service.CustomerBalances(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, balances)
}

// MaterialsSummary handles GET /reports/materials/:id for one customer.
func (h *ReportsHandler) MaterialsSummary(c *gin.Context) {
	customerID, ok := h.ParseID(c)
	if !ok {
		return
	}

	lines, err := h.service.MaterialsSummary(c.Request.Context(), customerID.String())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, lines)
}

// ExportCSV handles GET /reports/export. Streams the month's
// transactions as a CSV attachment.
func (h *ReportsHandler) ExportCSV(c *gin.Context) {
	now := time.Now()
	year := h.ParseIntQuery(c, "year", now.Year())
	month := h.ParseIntQuery(c, "month", int(now.Month()))
	clerkSearch := c.Query("clerk")

	filename := fmt.Sprintf("transactions-%04d-%02d.csv", year, month)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.service.ExportCSV(c.Request.Context(), c.Writer, year, month, clerkSearch); err != nil {
		h.Error(c, err)
		return
	}
}
