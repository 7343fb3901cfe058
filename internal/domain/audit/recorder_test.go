package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "quarryledger/internal/core/context"
)

type memStore struct {
	entries []Entry
	fail    bool
}

func (m *memStore) Append(_ context.Context, entry Entry) error {
	if m.fail {
		return errors.New("store down")
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memStore) List(_ context.Context, limit int) ([]Entry, error) {
	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	out := make([]Entry, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func userCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "u1",
		Name:   "Asha",
		Role:   "CLERK",
	})
}

func TestRecordAttributesActor(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store)

	rec.Record(userCtx(), ActionCreate, EntityProduct, "Grey Granite", "Created product")

	require.Len(t, store.entries, 1)
	e := store.entries[0]
	assert.Equal(t, "u1", e.UserID)
	assert.Equal(t, "Asha", e.UserName)
	assert.Equal(t, ActionCreate, e.Action)
	assert.Equal(t, EntityProduct, e.Entity)
	assert.Equal(t, "Grey Granite", e.RecordID)
	assert.False(t, e.Timestamp.IsZero())
}

func TestRecordSkipsUnauthenticated(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store)

	rec.Record(context.Background(), ActionDelete, EntityCustomer, "ACME", "")

	assert.Empty(t, store.entries)
}

func TestRecordSwallowsStoreFailure(t *testing.T) {
	store := &memStore{fail: true}
	rec := NewRecorder(store)

	assert.NotPanics(t, func() {
		rec.Record(userCtx(), ActionUpdate, EntityQuarry, "North Pit", "Updated quarry")
	})
}

func TestListNewestFirst(t *testing.T) {
	store := &memStore{}
	rec := NewRecorder(store)
	ctx := userCtx()

	rec.Record(ctx, ActionCreate, EntityProduct, "first", "")
	rec.Record(ctx, ActionCreate, EntityProduct, "second", "")

	entries, err := rec.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].RecordID)
}
