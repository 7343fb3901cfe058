package sale

import (
	"context"
	"time"

	"quarryledger/internal/core/id"
	"quarryledger/internal/core/security"
)

// Filter narrows transaction listings. Zero values mean "no
// constraint".
type Filter struct {
	// Search matches the ref number or customer name,
	// case-insensitively.
	Search string

	CustomerID string

	From *time.Time
	To   *time.Time

	Limit  int
	Offset int
}

// Repository defines the interface for Transaction persistence.
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, txID id.ID) error

	GetByID(ctx context.Context, txID id.ID) (*Transaction, error)

	// List returns transactions visible to scope in descending date
	// order.
	List(ctx context.Context, filter Filter, scope security.ViewScope) ([]*Transaction, error)

	// ListByCustomer returns every transaction of one customer,
	// regardless of scope. Balance math needs the full history.
	ListByCustomer(ctx context.Context, customerID string) ([]*Transaction, error)
}
