package sale

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quarryledger/internal/core/apperror"
	appctx "quarryledger/internal/core/context"
	"quarryledger/internal/core/id"
	"quarryledger/internal/core/security"
	"quarryledger/internal/domain/audit"
	"quarryledger/internal/domain/catalogs/customer"
	"quarryledger/internal/realtime"
	"quarryledger/pkg/numerator"
)

type mockRepo struct {
	byID map[id.ID]*Transaction
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[id.ID]*Transaction)}
}

func (m *mockRepo) Create(_ context.Context, tx *Transaction) error {
	cp := *tx
	m.byID[tx.ID] = &cp
	return nil
}

func (m *mockRepo) Update(_ context.Context, tx *Transaction) error {
	cp := *tx
	m.byID[tx.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, txID id.ID) error {
	delete(m.byID, txID)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, txID id.ID) (*Transaction, error) {
	if tx, ok := m.byID[txID]; ok {
		cp := *tx
		return &cp, nil
	}
	return nil, apperror.NewNotFound("transaction", txID)
}

func (m *mockRepo) List(_ context.Context, _ Filter, scope security.ViewScope) ([]*Transaction, error) {
	var out []*Transaction
	for _, tx := range m.byID {
		if scope.CanSee(tx.CreatedBy) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *mockRepo) ListByCustomer(_ context.Context, customerID string) ([]*Transaction, error) {
	var out []*Transaction
	for _, tx := range m.byID {
		if tx.CustomerID == customerID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type mockDirectory struct {
	customers map[id.ID]*customer.Customer
	counted   map[id.ID]int
}

func newMockDirectory(customers ...*customer.Customer) *mockDirectory {
	d := &mockDirectory{
		customers: make(map[id.ID]*customer.Customer),
		counted:   make(map[id.ID]int),
	}
	for _, c := range customers {
		d.customers[c.ID] = c
	}
	return d
}

func (d *mockDirectory) Get(_ context.Context, customerID id.ID) (*customer.Customer, error) {
	if c, ok := d.customers[customerID]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("customer", customerID)
}

func (d *mockDirectory) RecordTransaction(_ context.Context, customerID id.ID) error {
	d.counted[customerID]++
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

type fixture struct {
	svc      *Service
	repo     *mockRepo
	dir      *mockDirectory
	sink     *auditSink
	customer *customer.Customer
}

func newFixture() *fixture {
	c := customer.NewCustomer("ACME Constructions", "98765")
	c.Email = "accounts@acme.example"

	repo := newMockRepo()
	dir := newMockDirectory(c)
	sink := &auditSink{}

	seq := 0
	numbers := &numerator.MockGenerator{
		GetNextNumberFunc: func(_ context.Context, cfg numerator.Config, _ *numerator.Options, period time.Time) (string, error) {
			seq++
			return fmt.Sprintf("%s-%s-%05d", cfg.Prefix, period.Format("2006"), seq), nil
		},
	}

	svc := NewService(repo, dir, numbers, audit.NewRecorder(sink), realtime.NewHub())
	return &fixture{svc: svc, repo: repo, dir: dir, sink: sink, customer: c}
}

func clerkCtx() context.Context {
	return appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "clerk-1", Name: "Ravi", Role: "CLERK",
	})
}

func (f *fixture) draft(invoiceRate, qty, deposit string) *Transaction {
	return &Transaction{
		CustomerID:         f.customer.ID.String(),
		DestinationAddress: "Plot 14, Ring Road",
		Deposit:            money(deposit),
		Items: []Item{{
			ProductID:     id.New().String(),
			ProductName:   "Blue Metal 20mm",
			QuarryID:      id.New().String(),
			QuarryName:    "North Pit",
			PurchasePrice: money("100"),
			SalesPrice:    money(invoiceRate),
			Quantity:      money(qty),
		}},
	}
}

func TestCreateComputesAndPosts(t *testing.T) {
	f := newFixture()
	ctx := clerkCtx()

	// invoice 5000, deposit 2000
	tx := f.draft("500", "10", "2000")
	require.NoError(t, f.svc.Create(ctx, tx))

	assert.Equal(t, fmt.Sprintf("TX-%d-00001", time.Now().Year()), tx.RefNo)
	assert.True(t, tx.TotalInvoice.Equal(money("5000")))
	assert.True(t, tx.TotalPurchaseCost.Equal(money("1000")))
	assert.True(t, tx.Profit.Equal(money("4000")))
	assert.True(t, tx.Balance.Equal(money("-3000")), "customer owes 3000 after first sale")

	assert.Equal(t, "ACME Constructions", tx.CustomerName, "customer details snapshotted")
	assert.Equal(t, "98765", tx.CustomerPhone)
	assert.Equal(t, "clerk-1", tx.CreatedBy)

	assert.Equal(t, 1, f.dir.counted[f.customer.ID])
	require.Len(t, f.sink.entries, 1)
	assert.Equal(t, audit.EntityTransaction, f.sink.entries[0].Entity)
	assert.Equal(t, tx.RefNo, f.sink.entries[0].RecordID)
}

func TestSecondSaleClearsAccount(t *testing.T) {
	f := newFixture()
	ctx := clerkCtx()

	require.NoError(t, f.svc.Create(ctx, f.draft("500", "10", "2000"))) // invoice 5000, deposit 2000
	tx2 := f.draft("300", "10", "6000")                                 // invoice 3000, deposit 6000
	require.NoError(t, f.svc.Create(ctx, tx2))

	assert.True(t, tx2.Balance.IsZero(), "overpaying deposit settles the prior debt")
}

func TestCreateValidationWritesNothing(t *testing.T) {
	f := newFixture()
	ctx := clerkCtx()

	tx := f.draft("500", "10", "0")
	tx.DestinationAddress = ""

	require.Error(t, f.svc.Create(ctx, tx))
	assert.Empty(t, f.repo.byID)
	assert.Empty(t, f.sink.entries)
	assert.Zero(t, f.dir.counted[f.customer.ID])
}

func TestCreateRejectsSalesBelowPurchase(t *testing.T) {
	f := newFixture()

	tx := f.draft("90", "10", "0") // sales 90 < purchase 100
	err := f.svc.Create(clerkCtx(), tx)

	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePriceBelowCost, appErr.Code)
	assert.Equal(t, 1, appErr.Details["lineNo"])
}

func TestCreateAllowsZeroSalesPrice(t *testing.T) {
	f := newFixture()

	// A free-of-charge load: rate left at zero is not an undercut.
	tx := f.draft("0", "10", "0")
	assert.NoError(t, f.svc.Create(clerkCtx(), tx))
}

func TestUpdatePreservesRefAndDateAndExcludesSelf(t *testing.T) {
	f := newFixture()
	ctx := clerkCtx()

	// invoice 1000 fully paid.
	tx := f.draft("100", "10", "1000")
	require.NoError(t, f.svc.Create(ctx, tx))
	require.True(t, tx.Balance.IsZero())

	originalRef := tx.RefNo
	originalDate := tx.Date

	edit := f.draft("100", "10", "800")
	edit.ID = tx.ID
	edit.RefNo = "TAMPERED"
	edit.Date = time.Now().Add(48 * time.Hour)
	require.NoError(t, f.svc.Update(ctx, edit))

	assert.Equal(t, originalRef, edit.RefNo, "ref number is immutable")
	assert.Equal(t, originalDate, edit.Date, "original date is immutable")
	assert.True(t, edit.Balance.Equal(money("-200")), "reducing the deposit reopens 200 of debt")
	assert.Equal(t, 1, f.dir.counted[f.customer.ID], "edits do not bump the counter")
}

func TestClerkCannotTouchOthersTransactions(t *testing.T) {
	f := newFixture()

	tx := f.draft("100", "10", "0")
	require.NoError(t, f.svc.Create(clerkCtx(), tx))

	otherCtx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "clerk-2", Name: "Meena", Role: "CLERK",
	})

	_, err := f.svc.Get(otherCtx, tx.ID)
	require.Error(t, err)

	err = f.svc.Delete(otherCtx, tx.ID)
	require.Error(t, err)
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)

	adminCtx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "admin-1", Name: "Priya", Role: "ADMIN",
	})
	require.NoError(t, f.svc.Delete(adminCtx, tx.ID))
}

func TestCustomerBalanceFormula(t *testing.T) {
	f := newFixture()
	ctx := clerkCtx()

	require.NoError(t, f.svc.Create(ctx, f.draft("500", "10", "2000")))
	require.NoError(t, f.svc.Create(ctx, f.draft("300", "10", "1000")))

	balance, err := f.svc.CustomerBalance(ctx, f.customer.ID.String())
	require.NoError(t, err)
	assert.True(t, balance.Equal(money("-5000")), "sum of (deposit - invoice) across all transactions")
}
