// Package pricing maintains per-quarry product price sheets and their
// change history.
package pricing

import (
	"time"

	"quarryledger/internal/core/id"
	"quarryledger/internal/core/types"
)

// QuarryPrice is the current purchase rate of one product at one
// quarry. The pair (QuarryID, ProductID) is the natural key.
type QuarryPrice struct {
	QuarryID  id.ID `db:"quarry_id" json:"quarryId"`
	ProductID id.ID `db:"product_id" json:"productId"`

	Price types.Money `db:"price" json:"price"`

	UpdatedBy     string    `db:"updated_by" json:"updatedBy"`
	UpdatedByName string    `db:"updated_by_name" json:"updatedByName"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// CostHistory is one recorded rate change. Product and quarry names are
// denormalized at write time; when a name cannot be resolved the raw id
// is stored instead, so the row stays meaningful after deletions.
type CostHistory struct {
	ID id.ID `db:"id" json:"id"`

	ProductID id.ID `db:"product_id" json:"productId"`
	QuarryID  id.ID `db:"quarry_id" json:"quarryId"`

	ProductName string `db:"product_name" json:"productName"`
	QuarryName  string `db:"quarry_name" json:"quarryName"`

	OldPrice types.Money `db:"old_price" json:"oldPrice"`
	NewPrice types.Money `db:"new_price" json:"newPrice"`

	ChangedBy string    `db:"changed_by" json:"changedBy"`
	Date      time.Time `db:"date" json:"date"`
}

// PriceOption is an active product priced at a quarry, used to prefill
// the purchase rate on a new sale line.
type PriceOption struct {
	ProductID   id.ID       `json:"productId"`
	ProductName string      `json:"productName"`
	Price       types.Money `json:"price"`
}
