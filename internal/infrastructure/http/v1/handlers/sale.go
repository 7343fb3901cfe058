package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"quarryledger/internal/core/id"
	"quarryledger/internal/domain/documents/sale"
	"quarryledger/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles sale transaction endpoints.
type SaleHandler struct {
	*BaseHandler
	service *sale.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service) *SaleHandler {
	return &SaleHandler{BaseHandler: base, service: service}
}

// Create handles POST /transactions.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.TransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tx := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), tx); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, tx)
}

// Update handles PUT /transactions/:id.
func (h *SaleHandler) Update(c *gin.Context) {
	txID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tx := req.ToEntity()
	tx.ID = txID
	if err := h.service.Update(c.Request.Context(), tx); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, tx)
}

// Delete handles DELETE /transactions/:id.
func (h *SaleHandler) Delete(c *gin.Context) {
	txID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), txID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Get handles GET /transactions/:id.
func (h *SaleHandler) Get(c *gin.Context) {
	txID, ok := h.ParseID(c)
	if !ok {
		return
	}

	tx, err := h.service.Get(c.Request.Context(), txID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, tx)
}

// List handles GET /transactions.
func (h *SaleHandler) List(c *gin.Context) {
	filter := sale.Filter{
		Search:     c.Query("search"),
		CustomerID: c.Query("customerId"),
		Limit:      h.ParseIntQuery(c, "limit", 50),
		Offset:     h.ParseIntQuery(c, "offset", 0),
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = &to
	}

	txs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, txs)
}

// CustomerBalance handles GET /customers/:id/balance.
func (h *SaleHandler) CustomerBalance(c *gin.Context) {
	customerID, ok := h.ParseID(c)
	if !ok {
		return
	}

	balance, err := h.service.CustomerBalance(c.Request.Context(), customerID.String())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.BalanceResponse{CustomerID: customerID.String(), Balance: balance})
}

// PreviewBalance handles POST /transactions/balance-preview. Computes
// the closing balance a document would post with, before saving.
func (h *SaleHandler) PreviewBalance(c *gin.Context) {
	var req dto.BalancePreviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	excludeID := id.Nil()
	if req.ExcludeID != "" {
		parsed, err := id.Parse(req.ExcludeID)
		if err == nil {
			excludeID = parsed
		}
	}

	balance, err := h.service.PreviewClosingBalance(
		c.Request.Context(), req.CustomerID, excludeID, req.InvoiceTotal.Money, req.Deposit.Money)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.BalanceResponse{CustomerID: req.CustomerID, Balance: balance})
}
