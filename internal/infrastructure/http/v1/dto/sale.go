package dto

import (
	"strings"
	"time"

	"quarryledger/internal/core/types"
	"quarryledger/internal/domain/documents/sale"
)

// LenientMoney decodes a money or tonnage figure from JSON without
// rejecting the document: numbers and numeric strings parse as usual,
// while null, empty and unparsable values read as zero. A half-filled
// sale form posts zeros instead of bouncing with a 400.
type LenientMoney struct {
	types.Money
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *LenientMoney) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		s = ""
	}
	m.Money = types.ParseMoneyLenient(s)
	return nil
}

// SaleItemRequest is one line of a submitted transaction. Derived
// figures are ignored on input; the ledger recomputes them.
type SaleItemRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	ProductName string `json:"productName"`

	QuarryID       string `json:"quarryId" binding:"required"`
	QuarryName     string `json:"quarryName"`
	QuarryLocation string `json:"quarryLocation"`

	TruckPlateNumber string `json:"truckPlateNumber"`
	DriverName       string `json:"driverName"`

	PurchasePrice LenientMoney `json:"purchasePrice"`
	SalesPrice    LenientMoney `json:"salesPrice"`
	Quantity      LenientMoney `json:"quantity"`
	TransportCost LenientMoney `json:"transportCost"`
	OtherExpenses LenientMoney `json:"otherExpenses"`
}

// TransactionRequest for creating or updating a transaction.
type TransactionRequest struct {
	CustomerID         string            `json:"customerId" binding:"required"`
	DestinationAddress string            `json:"destinationAddress" binding:"required"`
	Items              []SaleItemRequest `json:"items" binding:"required"`
	Deposit            LenientMoney      `json:"deposit"`
	Date               *time.Time        `json:"date"`
}

// ToEntity converts the request to a transaction document.
func (r TransactionRequest) ToEntity() *sale.Transaction {
	tx := &sale.Transaction{
		CustomerID:         r.CustomerID,
		DestinationAddress: r.DestinationAddress,
		Deposit:            r.Deposit.Money,
	}
	if r.Date != nil {
		tx.Date = *r.Date
	}

	tx.Items = make([]sale.Item, len(r.Items))
	for i, item := range r.Items {
		tx.Items[i] = sale.Item{
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			QuarryID:         item.QuarryID,
			QuarryName:       item.QuarryName,
			QuarryLocation:   item.QuarryLocation,
			TruckPlateNumber: item.TruckPlateNumber,
			DriverName:       item.DriverName,
			PurchasePrice:    item.PurchasePrice.Money,
			SalesPrice:       item.SalesPrice.Money,
			Quantity:         item.Quantity.Money,
			TransportCost:    item.TransportCost.Money,
			OtherExpenses:    item.OtherExpenses.Money,
		}
	}
	return tx
}

// BalancePreviewRequest for POST /transactions/balance-preview.
type BalancePreviewRequest struct {
	CustomerID   string       `json:"customerId" binding:"required"`
	ExcludeID    string       `json:"excludeId"`
	InvoiceTotal LenientMoney `json:"invoiceTotal"`
	Deposit      LenientMoney `json:"deposit"`
}

// BalanceResponse carries a computed standing.
type BalanceResponse struct {
	CustomerID string      `json:"customerId"`
	Balance    types.Money `json:"balance"`
}
