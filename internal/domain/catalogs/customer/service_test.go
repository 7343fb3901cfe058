package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quarryledger/internal/core/apperror"
	appctx "quarryledger/internal/core/context"
	"quarryledger/internal/core/id"
	"quarryledger/internal/core/security"
	"quarryledger/internal/domain"
	"quarryledger/internal/domain/audit"
	"quarryledger/internal/realtime"
)

type mockRepo struct {
	byID map[id.ID]*Customer
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[id.ID]*Customer)}
}

func (m *mockRepo) Create(_ context.Context, c *Customer) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *mockRepo) Update(_ context.Context, c *Customer) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, customerID id.ID) error {
	delete(m.byID, customerID)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, customerID id.ID) (*Customer, error) {
	if c, ok := m.byID[customerID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperror.NewNotFound("customer", customerID)
}

func (m *mockRepo) List(_ context.Context, _ domain.ListFilter, scope security.ViewScope) (domain.ListResult[*Customer], error) {
	var items []*Customer
	for _, c := range m.byID {
		if scope.CanSee(c.CreatedBy) {
			items = append(items, c)
		}
	}
	return domain.ListResult[*Customer]{Items: items, TotalCount: int64(len(items))}, nil
}

func (m *mockRepo) IncrementTransactionCount(_ context.Context, customerID id.ID, delta int) error {
	c, ok := m.byID[customerID]
	if !ok {
		return apperror.NewNotFound("customer", customerID)
	}
	c.TransactionCount += delta
	if c.TransactionCount < 0 {
		c.TransactionCount = 0
	}
	return nil
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

func ctxAs(userID, name, role string) context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: userID, Name: name, Role: role,
	})
}

func setup() (*Service, *mockRepo, *auditSink) {
	repo := newMockRepo()
	sink := &auditSink{}
	return NewService(repo, audit.NewRecorder(sink), realtime.NewHub()), repo, sink
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc, _, _ := setup()
	ctx := ctxAs("clerk-1", "Ravi", "CLERK")

	assert.Error(t, svc.Create(ctx, NewCustomer("", "99999")))
	assert.Error(t, svc.Create(ctx, NewCustomer("ACME Constructions", "")))
	assert.NoError(t, svc.Create(ctx, NewCustomer("ACME Constructions", "99999")))
}

func TestUpdatePreservesCounterAndOwnership(t *testing.T) {
	svc, repo, _ := setup()
	ctx := ctxAs("clerk-1", "Ravi", "CLERK")

	c := NewCustomer("ACME", "111")
	require.NoError(t, svc.Create(ctx, c))
	require.NoError(t, svc.RecordTransaction(ctx, c.ID))
	require.NoError(t, svc.RecordTransaction(ctx, c.ID))

	edit := &Customer{ID: c.ID, Name: "ACME Builders", Phone: "222"}
	require.NoError(t, svc.Update(ctxAs("admin-1", "Priya", "ADMIN"), edit))

	stored := repo.byID[c.ID]
	assert.Equal(t, "ACME Builders", stored.Name)
	assert.Equal(t, 2, stored.TransactionCount, "counter survives edits")
	assert.Equal(t, "clerk-1", stored.CreatedBy)
}

func TestListAppliesScope(t *testing.T) {
	svc, _, _ := setup()

	require.NoError(t, svc.Create(ctxAs("clerk-1", "Ravi", "CLERK"), NewCustomer("Mine", "1")))
	require.NoError(t, svc.Create(ctxAs("clerk-2", "Meena", "CLERK"), NewCustomer("Theirs", "2")))

	clerkList, err := svc.List(ctxAs("clerk-1", "Ravi", "CLERK"), domain.DefaultListFilter())
	require.NoError(t, err)
	require.Len(t, clerkList.Items, 1)
	assert.Equal(t, "Mine", clerkList.Items[0].Name)

	adminList, err := svc.List(ctxAs("admin-1", "Priya", "ADMIN"), domain.DefaultListFilter())
	require.NoError(t, err)
	assert.Len(t, adminList.Items, 2)
}

func TestWritesScopedToCreator(t *testing.T) {
	svc, repo, _ := setup()
	owner := ctxAs("clerk-1", "Ravi", "CLERK")
	other := ctxAs("clerk-2", "Meena", "CLERK")

	c := NewCustomer("Scoped Ltd", "555")
	require.NoError(t, svc.Create(owner, c))

	_, err := svc.Get(other, c.ID)
	requireForbidden(t, err)

	edit := &Customer{ID: c.ID, Name: "Hijacked", Phone: "666"}
	requireForbidden(t, svc.Update(other, edit))

	requireForbidden(t, svc.Delete(other, c.ID))
	assert.Contains(t, repo.byID, c.ID, "record survives a forbidden delete")
	assert.Equal(t, "Scoped Ltd", repo.byID[c.ID].Name)

	// The creator and an admin both pass the guard.
	_, err = svc.Get(owner, c.ID)
	assert.NoError(t, err)
	assert.NoError(t, svc.Delete(ctxAs("admin-1", "Priya", "ADMIN"), c.ID))
}

func requireForbidden(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestDeleteAudits(t *testing.T) {
	svc, repo, sink := setup()
	ctx := ctxAs("clerk-1", "Ravi", "CLERK")

	c := NewCustomer("Gone Pvt Ltd", "3")
	require.NoError(t, svc.Create(ctx, c))
	require.NoError(t, svc.Delete(ctx, c.ID))

	assert.NotContains(t, repo.byID, c.ID)
	last := sink.entries[len(sink.entries)-1]
	assert.Equal(t, audit.ActionDelete, last.Action)
	assert.Equal(t, audit.EntityCustomer, last.Entity)
	assert.Equal(t, "Gone Pvt Ltd", last.RecordID)
}
