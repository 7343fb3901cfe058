// Package sale provides the sale transaction document: a multi-line
// invoice with deposit tracking and a running customer balance.
package sale

import (
	"context"
	"strings"
	"time"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/entity"
	"quarryledger/internal/core/id"
	"quarryledger/internal/core/types"
)

// Item is one dispatched load on a transaction. Product and quarry
// details are snapshotted at sale time; later catalog edits never
// rewrite a posted line. Derived fields are computed by the ledger and
// stored alongside the inputs.
type Item struct {
	ProductID   string `db:"-" json:"productId"`
	ProductName string `db:"-" json:"productName"`

	QuarryID       string `db:"-" json:"quarryId"`
	QuarryName     string `db:"-" json:"quarryName"`
	QuarryLocation string `db:"-" json:"quarryLocation"`

	TruckPlateNumber string `db:"-" json:"truckPlateNumber"`
	DriverName       string `db:"-" json:"driverName"`

	PurchasePrice types.Money    `db:"-" json:"purchasePrice"`
	SalesPrice    types.Money    `db:"-" json:"salesPrice"`
	Quantity      types.Quantity `db:"-" json:"quantity"`
	TransportCost types.Money    `db:"-" json:"transportCost"`
	OtherExpenses types.Money    `db:"-" json:"otherExpenses"`

	// Derived.
	TotalPurchaseCost types.Money `db:"-" json:"totalPurchaseCost"`
	TotalInvoice      types.Money `db:"-" json:"totalInvoice"`
	Subtotal          types.Money `db:"-" json:"subtotal"`
	Profit            types.Money `db:"-" json:"profit"`
}

// Transaction is a posted sale invoice. Customer details are
// snapshotted; RefNo and Date are assigned at creation and never change
// across edits. Balance is the customer's closing standing as of this
// save (negative means the customer owes).
type Transaction struct {
	ID    id.ID  `db:"id" json:"id"`
	RefNo string `db:"ref_no" json:"refNo"`

	CustomerID    string `db:"customer_id" json:"customerId"`
	CustomerName  string `db:"customer_name" json:"customerName"`
	CustomerPhone string `db:"customer_phone" json:"customerPhone"`
	CustomerEmail string `db:"customer_email" json:"customerEmail"`

	DestinationAddress string `db:"destination_address" json:"destinationAddress"`

	// Items is stored as a JSONB document column.
	Items []Item `db:"items" json:"items"`

	// Aggregates across all items.
	TotalInvoice      types.Money    `db:"total_invoice" json:"totalInvoice"`
	TotalPurchaseCost types.Money    `db:"total_purchase_cost" json:"totalPurchaseCost"`
	Quantity          types.Quantity `db:"quantity" json:"quantity"`
	Profit            types.Money    `db:"profit" json:"profit"`

	Deposit types.Money `db:"deposit" json:"deposit"`
	Balance types.Money `db:"balance" json:"balance"`

	Date time.Time `db:"date" json:"date"`

	entity.Owned
}

// Validate implements entity.Validatable. It checks the document
// before any computation or write; a failing transaction persists
// nothing.
func (t *Transaction) Validate(_ context.Context) error {
	if strings.TrimSpace(t.CustomerID) == "" {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if strings.TrimSpace(t.DestinationAddress) == "" {
		return apperror.NewValidation("destination address is required").
			WithDetail("field", "destinationAddress")
	}
	if len(t.Items) == 0 {
		return apperror.NewValidation("at least one line item is required").
			WithDetail("field", "items")
	}

	for i, item := range t.Items {
		lineNo := i + 1
		if strings.TrimSpace(item.ProductID) == "" {
			return apperror.NewValidation("line item is missing a product").
				WithDetail("lineNo", lineNo)
		}
		if strings.TrimSpace(item.QuarryID) == "" {
			return apperror.NewValidation("line item is missing a quarry").
				WithDetail("lineNo", lineNo)
		}
		if !item.Quantity.IsPositive() {
			return apperror.NewValidation("line item quantity must be positive").
				WithDetail("lineNo", lineNo)
		}
		if item.SalesPrice.IsPositive() && item.SalesPrice.LessThan(item.PurchasePrice) {
			return apperror.NewPriceBelowCost(lineNo, item.SalesPrice.String(), item.PurchasePrice.String())
		}
	}
	return nil
}
