package dto

import (
	"quarryledger/internal/core/types"
)

// SetPriceRequest for PUT /quarries/:id/prices.
type SetPriceRequest struct {
	ProductID string      `json:"productId" binding:"required"`
	Price     types.Money `json:"price"`
}
