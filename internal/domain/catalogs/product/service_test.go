package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quarryledger/internal/core/apperror"
	appctx "quarryledger/internal/core/context"
	"quarryledger/internal/core/id"
	"quarryledger/internal/domain"
	"quarryledger/internal/domain/audit"
	"quarryledger/internal/realtime"
)

type mockRepo struct {
	byID map[id.ID]*Product
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[id.ID]*Product)}
}

func (m *mockRepo) Create(_ context.Context, p *Product) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *mockRepo) Update(_ context.Context, p *Product) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, productID id.ID) (*Product, error) {
	if p, ok := m.byID[productID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperror.NewNotFound("product", productID)
}

func (m *mockRepo) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	var items []*Product
	for _, p := range m.byID {
		if p.IsDeleted && !filter.IncludeDeleted {
			continue
		}
		items = append(items, p)
	}
	return domain.ListResult[*Product]{Items: items, TotalCount: int64(len(items))}, nil
}

type auditSink struct {
	entries []audit.Entry
}

func (a *auditSink) Append(_ context.Context, e audit.Entry) error {
	a.entries = append(a.entries, e)
	return nil
}

func (a *auditSink) List(_ context.Context, _ int) ([]audit.Entry, error) {
	return a.entries, nil
}

func setup() (*Service, *mockRepo, *auditSink, *realtime.Hub) {
	repo := newMockRepo()
	sink := &auditSink{}
	hub := realtime.NewHub()
	return NewService(repo, audit.NewRecorder(sink), hub), repo, sink, hub
}

func clerkCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "clerk-1",
		Name:   "Ravi",
		Role:   "CLERK",
	})
}

func TestCreateStampsCreatorAndAudits(t *testing.T) {
	svc, repo, sink, hub := setup()

	published := 0
	hub.Subscribe(realtime.CollectionProducts, func(realtime.Event) { published++ })

	p := NewProduct("Blue Metal 20mm", "Crushed aggregate")
	require.NoError(t, svc.Create(clerkCtx(), p))

	stored := repo.byID[p.ID]
	assert.Equal(t, "clerk-1", stored.CreatedBy)
	assert.Equal(t, "Ravi", stored.CreatedByName)
	assert.False(t, stored.CreatedAt.IsZero())

	require.Len(t, sink.entries, 1)
	assert.Equal(t, audit.ActionCreate, sink.entries[0].Action)
	assert.Equal(t, audit.EntityProduct, sink.entries[0].Entity)
	assert.Equal(t, "Blue Metal 20mm", sink.entries[0].RecordID)
	assert.Equal(t, 1, published)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc, _, sink, _ := setup()

	err := svc.Create(clerkCtx(), NewProduct("   ", ""))

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, sink.entries)
}

func TestUpdatePreservesOwnership(t *testing.T) {
	svc, repo, _, _ := setup()
	ctx := clerkCtx()

	p := NewProduct("M-Sand", "")
	require.NoError(t, svc.Create(ctx, p))

	edit := &Product{ID: p.ID, Name: "M-Sand Fine", Description: "Washed"}
	adminCtx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "admin-1", Name: "Priya", Role: "ADMIN",
	})
	require.NoError(t, svc.Update(adminCtx, edit))

	stored := repo.byID[p.ID]
	assert.Equal(t, "M-Sand Fine", stored.Name)
	assert.Equal(t, "clerk-1", stored.CreatedBy, "ownership never migrates on edit")
}

func TestUpdateDeletedProductRejected(t *testing.T) {
	svc, _, _, _ := setup()
	ctx := clerkCtx()

	p := NewProduct("Boulders", "")
	require.NoError(t, svc.Create(ctx, p))
	require.NoError(t, svc.Delete(ctx, p.ID))

	err := svc.Update(ctx, &Product{ID: p.ID, Name: "Boulders XL"})
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeProductRetired, appErr.Code)
}

func TestDeleteIsSoftAndIdempotent(t *testing.T) {
	svc, repo, sink, _ := setup()
	ctx := clerkCtx()

	p := NewProduct("Gravel", "")
	require.NoError(t, svc.Create(ctx, p))
	require.NoError(t, svc.Delete(ctx, p.ID))
	require.NoError(t, svc.Delete(ctx, p.ID), "second delete is a no-op")

	stored := repo.byID[p.ID]
	assert.True(t, stored.IsDeleted)
	require.NotNil(t, stored.DeletedAt)

	deletes := 0
	for _, e := range sink.entries {
		if e.Action == audit.ActionDelete {
			deletes++
		}
	}
	assert.Equal(t, 1, deletes)

	list, err := svc.List(ctx, domain.DefaultListFilter())
	require.NoError(t, err)
	assert.Empty(t, list.Items, "active listings exclude deleted products")
}
