package reports

import (
	"sort"

	"quarryledger/internal/core/types"
	"quarryledger/internal/domain/documents/sale"
)

// CustomerBalance is one customer's running standing derived from
// their transactions: the sum of (deposit - totalInvoice). Negative
// means the customer owes.
type CustomerBalance struct {
	CustomerID   string      `json:"customerId"`
	CustomerName string      `json:"customerName"`
	Balance      types.Money `json:"balance"`
	TxCount      int         `json:"txCount"`
}

// BuildCustomerBalances derives every customer's standing from scoped
// transactions, the most indebted first.
func BuildCustomerBalances(txs []*sale.Transaction) []CustomerBalance {
	byCustomer := make(map[string]*CustomerBalance)
	for _, tx := range txs {
		b, ok := byCustomer[tx.CustomerID]
		if !ok {
			b = &CustomerBalance{
				CustomerID:   tx.CustomerID,
				CustomerName: tx.CustomerName,
				Balance:      types.Zero(),
			}
			byCustomer[tx.CustomerID] = b
		}
		b.Balance = b.Balance.Add(tx.Deposit.Sub(tx.TotalInvoice))
		b.TxCount++
	}

	out := make([]CustomerBalance, 0, len(byCustomer))
	for _, b := range byCustomer {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Balance.Equal(out[j].Balance) {
			return out[i].Balance.LessThan(out[j].Balance)
		}
		return out[i].CustomerName < out[j].CustomerName
	})
	return out
}

// MaterialLine is one product's total quantity taken by a customer.
type MaterialLine struct {
	ProductName string         `json:"productName"`
	Quantity    types.Quantity `json:"quantity"`
}

// BuildMaterialsSummary groups one customer's line items by product
// name and sums the quantity, largest first.
func BuildMaterialsSummary(txs []*sale.Transaction, customerID string) []MaterialLine {
	byProduct := make(map[string]types.Quantity)
	for _, tx := range txs {
		if tx.CustomerID != customerID {
			continue
		}
		for _, item := range tx.Items {
			current, ok := byProduct[item.ProductName]
			if !ok {
				current = types.Zero()
			}
			byProduct[item.ProductName] = current.Add(item.Quantity)
		}
	}

	out := make([]MaterialLine, 0, len(byProduct))
	for name, qty := range byProduct {
		out = append(out, MaterialLine{ProductName: name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Quantity.Equal(out[j].Quantity) {
			return out[i].Quantity.GreaterThan(out[j].Quantity)
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out
}
