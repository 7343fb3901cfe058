package handlers

import (
	"github.com/gin-gonic/gin"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/id"
	"quarryledger/internal/domain/pricing"
	"quarryledger/internal/infrastructure/http/v1/dto"
)

// PricingHandler handles price sheet endpoints.
type PricingHandler struct {
	*BaseHandler
	service *pricing.Service
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(base *BaseHandler, service *pricing.Service) *PricingHandler {
	return &PricingHandler{BaseHandler: base, service: service}
}

// SetPrice handles PUT /quarries/:id/prices.
func (h *PricingHandler) SetPrice(c *gin.Context) {
	quarryID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.SetPriceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	productID, err := id.Parse(req.ProductID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id").WithDetail("productId", req.ProductID))
		return
	}

	if err := h.service.SetPrice(c.Request.Context(), quarryID, productID, req.Price); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "price updated")
}

// PriceSheet handles GET /quarries/:id/prices.
func (h *PricingHandler) PriceSheet(c *gin.Context) {
	quarryID, ok := h.ParseID(c)
	if !ok {
		return
	}

	prices, err := h.service.PriceSheet(c.Request.Context(), quarryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, prices)
}

// AvailableProducts handles GET /quarries/:id/products. Returns the
// active products priced at the quarry with their current rate.
func (h *PricingHandler) AvailableProducts(c *gin.Context) {
	quarryID, ok := h.ParseID(c)
	if !ok {
		return
	}

	options, err := h.service.AvailableProducts(c.Request.Context(), quarryID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, options)
}

// History handles GET /price-history.
func (h *PricingHandler) History(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 100)

	rows, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}
