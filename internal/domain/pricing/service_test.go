package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quarryledger/internal/core/apperror"
	appctx "quarryledger/internal/core/context"
	"quarryledger/internal/core/id"
	"quarryledger/internal/core/types"
	"quarryledger/internal/domain/audit"
	"quarryledger/internal/domain/catalogs/product"
	"quarryledger/internal/domain/catalogs/quarry"
	"quarryledger/internal/realtime"
)

type pairKey struct {
	quarryID, productID id.ID
}

type mockRepo struct {
	prices  map[pairKey]*QuarryPrice
	history []*CostHistory
}

func newMockRepo() *mockRepo {
	return &mockRepo{prices: make(map[pairKey]*QuarryPrice)}
}

func (m *mockRepo) GetPrice(_ context.Context, quarryID, productID id.ID) (*QuarryPrice, error) {
	if p, ok := m.prices[pairKey{quarryID, productID}]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperror.NewNotFound("quarry price", productID)
}

func (m *mockRepo) UpsertPrice(_ context.Context, p *QuarryPrice) error {
	cp := *p
	m.prices[pairKey{p.QuarryID, p.ProductID}] = &cp
	return nil
}

func (m *mockRepo) ListByQuarry(_ context.Context, quarryID id.ID) ([]*QuarryPrice, error) {
	var out []*QuarryPrice
	for k, p := range m.prices {
		if k.quarryID == quarryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) AppendHistory(_ context.Context, h *CostHistory) error {
	m.history = append(m.history, h)
	return nil
}

func (m *mockRepo) ListHistory(_ context.Context, limit int) ([]*CostHistory, error) {
	if limit > len(m.history) {
		limit = len(m.history)
	}
	out := make([]*CostHistory, 0, limit)
	for i := len(m.history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.history[i])
	}
	return out, nil
}

type productLookup map[id.ID]*product.Product

func (l productLookup) Get(_ context.Context, productID id.ID) (*product.Product, error) {
	if p, ok := l[productID]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("product", productID)
}

type quarryLookup map[id.ID]*quarry.Quarry

func (l quarryLookup) Get(_ context.Context, quarryID id.ID) (*quarry.Quarry, error) {
	if q, ok := l[quarryID]; ok {
		return q, nil
	}
	return nil, apperror.NewNotFound("quarry", quarryID)
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

type fixture struct {
	svc      *Service
	repo     *mockRepo
	sink     *auditSink
	quarryID id.ID
	prodID   id.ID
}

func newFixture() *fixture {
	repo := newMockRepo()
	sink := &auditSink{}

	prodID := id.New()
	quarryID := id.New()
	products := productLookup{prodID: &product.Product{ID: prodID, Name: "Blue Metal 20mm"}}
	quarries := quarryLookup{quarryID: &quarry.Quarry{ID: quarryID, Name: "North Pit", Location: "Hosur Road"}}

	svc := NewService(repo, products, quarries, audit.NewRecorder(sink), realtime.NewHub())
	return &fixture{svc: svc, repo: repo, sink: sink, quarryID: quarryID, prodID: prodID}
}

func actorCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "admin-1", Name: "Priya", Role: "ADMIN",
	})
}

func TestSetPriceFirstTimeWritesNoHistory(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.svc.SetPrice(actorCtx(), f.quarryID, f.prodID, types.MustMoney("450")))

	assert.Empty(t, f.repo.history, "first rate for a pair never creates history")

	current, err := f.svc.GetPrice(actorCtx(), f.quarryID, f.prodID)
	require.NoError(t, err)
	assert.True(t, current.Price.Equal(types.MustMoney("450")))
	assert.Equal(t, "admin-1", current.UpdatedBy)

	require.Len(t, f.sink.entries, 1)
	assert.Equal(t, audit.ActionUpdatePrice, f.sink.entries[0].Action)
	assert.Equal(t, audit.EntityQuarryPrice, f.sink.entries[0].Entity)
}

func TestSetPriceChangeWritesHistory(t *testing.T) {
	f := newFixture()
	ctx := actorCtx()

	require.NoError(t, f.svc.SetPrice(ctx, f.quarryID, f.prodID, types.MustMoney("450")))
	require.NoError(t, f.svc.SetPrice(ctx, f.quarryID, f.prodID, types.MustMoney("475.50")))

	require.Len(t, f.repo.history, 1)
	h := f.repo.history[0]
	assert.True(t, h.OldPrice.Equal(types.MustMoney("450")))
	assert.True(t, h.NewPrice.Equal(types.MustMoney("475.50")))
	assert.Equal(t, "Blue Metal 20mm", h.ProductName)
	assert.Equal(t, "North Pit", h.QuarryName)
	assert.Equal(t, "Priya", h.ChangedBy)
}

func TestSetPriceEqualRateSkipsHistoryButRefreshesStamp(t *testing.T) {
	f := newFixture()
	ctx := actorCtx()

	require.NoError(t, f.svc.SetPrice(ctx, f.quarryID, f.prodID, types.MustMoney("450")))

	clerkCtx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "clerk-1", Name: "Ravi", Role: "CLERK",
	})
	require.NoError(t, f.svc.SetPrice(clerkCtx, f.quarryID, f.prodID, types.MustMoney("450.00")))

	assert.Empty(t, f.repo.history, "re-saving an equal rate is not a change")

	current, err := f.svc.GetPrice(ctx, f.quarryID, f.prodID)
	require.NoError(t, err)
	assert.Equal(t, "clerk-1", current.UpdatedBy, "stamp always reflects the latest save")

	assert.Len(t, f.sink.entries, 2, "every save is audited, changed or not")
}

func TestSetPriceRejectsNegative(t *testing.T) {
	f := newFixture()

	err := f.svc.SetPrice(actorCtx(), f.quarryID, f.prodID, types.MustMoney("-1"))

	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestHistoryFallsBackToRawIDs(t *testing.T) {
	repo := newMockRepo()
	sink := &auditSink{}
	// Empty lookups simulate product and quarry records deleted after
	// pricing began.
	svc := NewService(repo, productLookup{}, quarryLookup{}, audit.NewRecorder(sink), realtime.NewHub())

	quarryID, prodID := id.New(), id.New()
	ctx := actorCtx()
	require.NoError(t, svc.SetPrice(ctx, quarryID, prodID, types.MustMoney("100")))
	require.NoError(t, svc.SetPrice(ctx, quarryID, prodID, types.MustMoney("120")))

	require.Len(t, repo.history, 1)
	assert.Equal(t, prodID.String(), repo.history[0].ProductName)
	assert.Equal(t, quarryID.String(), repo.history[0].QuarryName)
}

func TestAvailableProductsSkipsDeleted(t *testing.T) {
	repo := newMockRepo()

	quarryID := id.New()
	activeID, deletedID := id.New(), id.New()
	deleted := &product.Product{ID: deletedID, Name: "Retired"}
	deleted.MarkDeleted()
	products := productLookup{
		activeID:  &product.Product{ID: activeID, Name: "M-Sand"},
		deletedID: deleted,
	}

	svc := NewService(repo, products, quarryLookup{}, audit.NewRecorder(&auditSink{}), realtime.NewHub())
	ctx := actorCtx()
	require.NoError(t, svc.SetPrice(ctx, quarryID, activeID, types.MustMoney("900")))
	require.NoError(t, svc.SetPrice(ctx, quarryID, deletedID, types.MustMoney("500")))

	options, err := svc.AvailableProducts(ctx, quarryID)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "M-Sand", options[0].ProductName)
	assert.True(t, options[0].Price.Equal(types.MustMoney("900")))
}
