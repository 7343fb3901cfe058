package quarry

import (
	"context"

	"quarryledger/internal/core/id"
	"quarryledger/internal/core/security"
	"quarryledger/internal/domain"
)

// Repository defines the interface for Quarry persistence.
type Repository interface {
	Create(ctx context.Context, q *Quarry) error
	Update(ctx context.Context, q *Quarry) error
	Delete(ctx context.Context, quarryID id.ID) error

	GetByID(ctx context.Context, quarryID id.ID) (*Quarry, error)

	// List returns quarries visible to scope: everything for admins,
	// owned plus ownerless sites for clerks.
	List(ctx context.Context, filter domain.ListFilter, scope security.ViewScope) (domain.ListResult[*Quarry], error)
}
