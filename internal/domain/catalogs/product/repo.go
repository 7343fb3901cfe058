package product

import (
	"context"

	"quarryledger/internal/core/id"
	"quarryledger/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error

	// GetByID returns a product including soft-deleted ones.
	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// List returns products; soft-deleted ones only when
	// filter.IncludeDeleted is set.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)
}
