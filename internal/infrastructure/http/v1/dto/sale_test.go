package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quarryledger/internal/core/types"
)

func TestLenientMoneyDecoding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want types.Money
	}{
		{"Number", `{"v": 1250.50}`, types.MustMoney("1250.50")},
		{"Quoted number", `{"v": "980"}`, types.MustMoney("980")},
		{"Empty string", `{"v": ""}`, types.Zero()},
		{"Garbage", `{"v": "N/A"}`, types.Zero()},
		{"Null", `{"v": null}`, types.Zero()},
		{"Missing", `{}`, types.Zero()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				V LenientMoney `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &doc))
			assert.True(t, doc.V.Equal(tt.want), "got %s, want %s", doc.V.String(), tt.want.String())
		})
	}
}

func TestTransactionRequestToleratesHalfFilledFigures(t *testing.T) {
	raw := `{
		"customerId": "c-1",
		"destinationAddress": "Plot 14, Industrial Area",
		"deposit": "oops",
		"items": [{
			"productId": "p-1",
			"quarryId": "q-1",
			"salesPrice": "2400",
			"purchasePrice": "",
			"quantity": 12.5,
			"transportCost": "free"
		}]
	}`

	var req TransactionRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	tx := req.ToEntity()
	require.Len(t, tx.Items, 1)
	item := tx.Items[0]
	assert.True(t, item.SalesPrice.Equal(types.MustMoney("2400")))
	assert.True(t, item.PurchasePrice.IsZero(), "blank purchase price reads as zero")
	assert.True(t, item.Quantity.Equal(types.MustMoney("12.5")))
	assert.True(t, item.TransportCost.IsZero(), "unparsable transport cost reads as zero")
	assert.True(t, item.OtherExpenses.IsZero(), "omitted expenses read as zero")
	assert.True(t, tx.Deposit.IsZero(), "unparsable deposit reads as zero")
}
