// Package quarry provides the quarry site catalog.
package quarry

import (
	"context"
	"strings"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/id"
)

// Quarry is an extraction site. OwnerID assigns the site to a clerk;
// sites with no owner are visible to every clerk.
type Quarry struct {
	ID id.ID `db:"id" json:"id"`

	Name     string `db:"name" json:"name"`
	Location string `db:"location" json:"location"`

	// OwnerID is the managing user, empty for shared legacy sites.
	OwnerID   string `db:"owner_id" json:"ownerId,omitempty"`
	OwnerName string `db:"owner_name" json:"ownerName,omitempty"`
}

// NewQuarry creates a quarry with required fields.
func NewQuarry(name, location string) *Quarry {
	return &Quarry{
		ID:       id.New(),
		Name:     strings.TrimSpace(name),
		Location: strings.TrimSpace(location),
	}
}

// Validate implements entity.Validatable.
func (q *Quarry) Validate(_ context.Context) error {
	if strings.TrimSpace(q.Name) == "" {
		return apperror.NewValidation("quarry name is required").
			WithDetail("field", "name")
	}
	if strings.TrimSpace(q.Location) == "" {
		return apperror.NewValidation("quarry location is required").
			WithDetail("field", "location")
	}
	return nil
}
