package customer

import (
	"context"

	"quarryledger/internal/core/id"
	"quarryledger/internal/core/security"
	"quarryledger/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, customerID id.ID) error

	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)

	// List returns customers visible to scope: everything for admins,
	// own records for clerks.
	List(ctx context.Context, filter domain.ListFilter, scope security.ViewScope) (domain.ListResult[*Customer], error)

	// IncrementTransactionCount bumps the counter by delta, never below
	// zero.
	IncrementTransactionCount(ctx context.Context, customerID id.ID, delta int) error
}
