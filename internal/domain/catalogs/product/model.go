// Package product provides the granite product catalog.
package product

import (
	"context"
	"strings"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/entity"
	"quarryledger/internal/core/id"
)

// Product is a sellable material (granite grade, aggregate size, etc.).
// Deleted products stay on file so historical transaction lines keep
// resolving to a name.
type Product struct {
	ID id.ID `db:"id" json:"id"`

	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`

	entity.Owned
	entity.SoftDelete
}

// NewProduct creates a product with required fields.
func NewProduct(name, description string) *Product {
	return &Product{
		ID:          id.New(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(_ context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "name")
	}
	return nil
}
