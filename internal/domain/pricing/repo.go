package pricing

import (
	"context"

	"quarryledger/internal/core/id"
)

// Repository defines the interface for price sheet persistence.
type Repository interface {
	// GetPrice returns the current rate for the pair, or a not-found
	// error when the product has never been priced at the quarry.
	GetPrice(ctx context.Context, quarryID, productID id.ID) (*QuarryPrice, error)

	// UpsertPrice inserts or replaces the rate for the pair.
	UpsertPrice(ctx context.Context, p *QuarryPrice) error

	// ListByQuarry returns every priced product at a quarry.
	ListByQuarry(ctx context.Context, quarryID id.ID) ([]*QuarryPrice, error)

	// AppendHistory records one rate change.
	AppendHistory(ctx context.Context, h *CostHistory) error

	// ListHistory returns change rows in descending date order.
	ListHistory(ctx context.Context, limit int) ([]*CostHistory, error)
}
