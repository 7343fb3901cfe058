package sale

import (
	"quarryledger/internal/core/id"
	"quarryledger/internal/core/types"
)

// Ledger arithmetic. Pure functions over decimals; persistence and
// authorization live in the service.

// ComputeLine fills the derived fields of one item from its inputs:
//
//	totalPurchaseCost = purchasePrice x quantity
//	totalInvoice      = salesPrice x quantity
//	subtotal          = totalInvoice + transportCost + otherExpenses
//	profit            = (salesPrice - purchasePrice) x quantity
func ComputeLine(item Item) Item {
	item.TotalPurchaseCost = item.PurchasePrice.Mul(item.Quantity)
	item.TotalInvoice = item.SalesPrice.Mul(item.Quantity)
	item.Subtotal = item.TotalInvoice.Add(item.TransportCost).Add(item.OtherExpenses)
	item.Profit = item.SalesPrice.Sub(item.PurchasePrice).Mul(item.Quantity)
	return item
}

// Aggregates are the elementwise sums of item fields across a document.
type Aggregates struct {
	TotalInvoice      types.Money
	TotalPurchaseCost types.Money
	Quantity          types.Quantity
	Profit            types.Money
}

// ComputeAggregates sums the derived line fields. Items are expected to
// have passed through ComputeLine already.
func ComputeAggregates(items []Item) Aggregates {
	var agg Aggregates
	agg.TotalInvoice = types.Zero()
	agg.TotalPurchaseCost = types.Zero()
	agg.Quantity = types.Zero()
	agg.Profit = types.Zero()

	for _, item := range items {
		agg.TotalInvoice = agg.TotalInvoice.Add(item.TotalInvoice)
		agg.TotalPurchaseCost = agg.TotalPurchaseCost.Add(item.TotalPurchaseCost)
		agg.Quantity = agg.Quantity.Add(item.Quantity)
		agg.Profit = agg.Profit.Add(item.Profit)
	}
	return agg
}

// OpeningStanding sums (deposit - totalInvoice) over a customer's
// transactions, excluding excludeID. On edit the document being edited
// passes its own id so its previous figures never count against itself.
func OpeningStanding(transactions []*Transaction, customerID string, excludeID id.ID) types.Money {
	standing := types.Zero()
	for _, tx := range transactions {
		if tx.CustomerID != customerID || tx.ID == excludeID {
			continue
		}
		standing = standing.Add(tx.Deposit.Sub(tx.TotalInvoice))
	}
	return standing
}

// ClosingBalance is the customer's standing after this document posts:
//
//	closing = openingStanding - invoiceTotal + deposit
//
// Negative means the customer owes; positive is credit on account.
func ClosingBalance(openingStanding, invoiceTotal, deposit types.Money) types.Money {
	return openingStanding.Sub(invoiceTotal).Add(deposit)
}
