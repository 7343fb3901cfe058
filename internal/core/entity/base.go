// Package entity provides shared building blocks for ledger entities.
package entity

import (
	"context"
	"time"

	appctx "quarryledger/internal/core/context"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Owned carries creator attribution. The store uses last-write-wins
// semantics, so there is no version counter here; creator fields are
// written once and preserved across edits.
type Owned struct {
	CreatedBy     string    `db:"created_by" json:"createdBy"`
	CreatedByName string    `db:"created_by_name" json:"createdByName,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// StampCreator fills attribution from the authenticated user in ctx,
// keeping existing values on edit so ownership never migrates.
func (o *Owned) StampCreator(ctx context.Context) {
	if o.CreatedBy == "" {
		o.CreatedBy = appctx.GetUserID(ctx)
	}
	if o.CreatedByName == "" {
		o.CreatedByName = appctx.GetUserName(ctx)
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
}

// SoftDelete marks an entity unavailable for new activity while
// preserving it for historical records.
type SoftDelete struct {
	IsDeleted bool       `db:"is_deleted" json:"isDeleted"`
	DeletedAt *time.Time `db:"deleted_at" json:"deletedAt,omitempty"`
}

// MarkDeleted sets the deletion mark with the current timestamp.
func (s *SoftDelete) MarkDeleted() {
	now := time.Now().UTC()
	s.IsDeleted = true
	s.DeletedAt = &now
}
