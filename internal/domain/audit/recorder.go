// Package audit provides the append-only activity trail.
package audit

import (
	"context"
	"time"

	appctx "quarryledger/internal/core/context"
	"quarryledger/internal/core/id"
	"quarryledger/pkg/logger"
)

// Action is the audited operation verb.
type Action string

const (
	ActionCreate      Action = "CREATE"
	ActionUpdate      Action = "UPDATE"
	ActionDelete      Action = "DELETE"
	ActionUpdatePrice Action = "UPDATE_PRICE"
)

// Entity names the kind of record an entry refers to.
type Entity string

const (
	EntityProduct     Entity = "PRODUCT"
	EntityQuarry      Entity = "QUARRY"
	EntityQuarryPrice Entity = "QUARRY_PRICE"
	EntityCustomer    Entity = "CUSTOMER"
	EntityTransaction Entity = "TRANSACTION"
)

// Entry is a single immutable audit record. RecordID is a
// human-meaningful identifier (usually a name), not a surrogate key.
type Entry struct {
	ID        id.ID     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	UserName  string    `db:"user_name" json:"userName"`
	Action    Action    `db:"action" json:"action"`
	Entity    Entity    `db:"entity" json:"entity"`
	RecordID  string    `db:"record_id" json:"recordId"`
	Details   string    `db:"details" json:"details"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// Store persists entries. Append-only: no update or delete exists.
type Store interface {
	Append(ctx context.Context, entry Entry) error

	// List returns entries in descending timestamp order.
	List(ctx context.Context, limit int) ([]Entry, error)
}

// Recorder writes audit entries as a best-effort side effect of
// mutations. A failed audit write is logged and swallowed; it never
// rolls back or blocks the primary entity mutation.
type Recorder struct {
	store Store
}

// NewRecorder creates a new audit recorder.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record appends one entry attributed to the authenticated user in ctx.
// Unauthenticated contexts are skipped silently.
func (r *Recorder) Record(ctx context.Context, action Action, entity Entity, recordID, details string) {
	user := appctx.GetUser(ctx)
	if user == nil {
		return
	}

	entry := Entry{
		ID:        id.New(),
		UserID:    user.UserID,
		UserName:  user.Name,
		Action:    action,
		Entity:    entity,
		RecordID:  recordID,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}

	if err := r.store.Append(ctx, entry); err != nil {
		logger.Warn(ctx, "audit write failed",
			"action", action,
			"entity", entity,
			"record_id", recordID,
			"error", err,
		)
	}
}

// List returns the newest entries, up to limit.
func (r *Recorder) List(ctx context.Context, limit int) ([]Entry, error) {
	return r.store.List(ctx, limit)
}
