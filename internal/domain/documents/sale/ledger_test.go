package sale

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quarryledger/internal/core/id"
	"quarryledger/internal/core/types"
)

func money(s string) types.Money {
	return types.MustMoney(s)
}

func TestComputeLine(t *testing.T) {
	item := ComputeLine(Item{
		PurchasePrice: money("400"),
		SalesPrice:    money("550"),
		Quantity:      money("12.5"),
		TransportCost: money("1500"),
		OtherExpenses: money("250"),
	})

	assert.True(t, item.TotalPurchaseCost.Equal(money("5000")))
	assert.True(t, item.TotalInvoice.Equal(money("6875")))
	assert.True(t, item.Subtotal.Equal(money("8625")))
	assert.True(t, item.Profit.Equal(money("1875")))
}

func TestComputeLineZeroInputsStayZero(t *testing.T) {
	item := ComputeLine(Item{Quantity: money("10")})

	assert.True(t, item.TotalPurchaseCost.IsZero())
	assert.True(t, item.TotalInvoice.IsZero())
	assert.True(t, item.Subtotal.IsZero())
	assert.True(t, item.Profit.IsZero())
}

func TestComputeLineLossMakingLine(t *testing.T) {
	item := ComputeLine(Item{
		PurchasePrice: money("500"),
		SalesPrice:    money("450"),
		Quantity:      money("2"),
	})

	assert.True(t, item.Profit.Equal(money("-100")))
}

func TestComputeAggregatesSumsElementwise(t *testing.T) {
	items := []Item{
		ComputeLine(Item{PurchasePrice: money("100"), SalesPrice: money("150"), Quantity: money("10"), TransportCost: money("500")}),
		ComputeLine(Item{PurchasePrice: money("200"), SalesPrice: money("260"), Quantity: money("5"), OtherExpenses: money("120")}),
	}

	agg := ComputeAggregates(items)

	// totalInvoice is the sum of line invoices, transport and other
	// expenses are not folded in.
	assert.True(t, agg.TotalInvoice.Equal(money("2800")))
	assert.True(t, agg.TotalPurchaseCost.Equal(money("2000")))
	assert.True(t, agg.Quantity.Equal(money("15")))
	assert.True(t, agg.Profit.Equal(money("800")))
}

func TestComputeAggregatesEmpty(t *testing.T) {
	agg := ComputeAggregates(nil)

	assert.True(t, agg.TotalInvoice.IsZero())
	assert.True(t, agg.Quantity.IsZero())
}

func TestOpeningStandingExcludesSelfAndOtherCustomers(t *testing.T) {
	self := id.New()
	txs := []*Transaction{
		{ID: self, CustomerID: "c1", TotalInvoice: money("1000"), Deposit: money("1000")},
		{ID: id.New(), CustomerID: "c1", TotalInvoice: money("5000"), Deposit: money("2000")},
		{ID: id.New(), CustomerID: "c2", TotalInvoice: money("900"), Deposit: money("900")},
	}

	standing := OpeningStanding(txs, "c1", self)

	assert.True(t, standing.Equal(money("-3000")))
}

func TestClosingBalanceRunningLedger(t *testing.T) {
	// Tx1: invoice 5000, deposit 2000 -> customer owes 3000.
	tx1Closing := ClosingBalance(money("0"), money("5000"), money("2000"))
	assert.True(t, tx1Closing.Equal(money("-3000")))

	// Tx2: invoice 3000, deposit 6000 clears the account.
	tx2Closing := ClosingBalance(money("-3000"), money("3000"), money("6000"))
	assert.True(t, tx2Closing.IsZero())
}

func TestClosingBalanceDepositEdit(t *testing.T) {
	// A paid-off document edited from deposit 1000 to 800 leaves the
	// customer owing 200. The document's own old figures are excluded
	// via OpeningStanding, so the standing here is zero.
	closing := ClosingBalance(money("0"), money("1000"), money("800"))
	assert.True(t, closing.Equal(money("-200")))
}
