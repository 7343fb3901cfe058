// Package customer provides the customer catalog.
package customer

import (
	"context"
	"strings"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/entity"
	"quarryledger/internal/core/id"
)

// Customer is a buying party. TransactionCount is maintained by the
// sales ledger; the running balance is always derived from the
// customer's transactions, never stored here.
type Customer struct {
	ID id.ID `db:"id" json:"id"`

	Name  string `db:"name" json:"name"`
	Phone string `db:"phone" json:"phone"`
	Email string `db:"email" json:"email,omitempty"`

	TransactionCount int `db:"transaction_count" json:"transactionCount"`

	entity.Owned
}

// NewCustomer creates a customer with required fields.
func NewCustomer(name, phone string) *Customer {
	return &Customer{
		ID:    id.New(),
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "name")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return apperror.NewValidation("customer phone is required").
			WithDetail("field", "phone")
	}
	return nil
}
