package reports

import (
	"encoding/csv"
	"io"

	"quarryledger/internal/domain/documents/sale"
)

// WriteCSV streams scoped transactions as CSV. The clerk column is
// appended only for admin exports.
func WriteCSV(w io.Writer, txs []*sale.Transaction, includeClerk bool) error {
	cw := csv.NewWriter(w)

	header := []string{"Date", "Ref No", "Customer", "Revenue", "Profit", "Balance", "Tonnage"}
	if includeClerk {
		header = append(header, "Clerk")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, tx := range txs {
		row := []string{
			tx.Date.UTC().Format("2006-01-02"),
			tx.RefNo,
			tx.CustomerName,
			tx.TotalInvoice.String(),
			tx.Profit.String(),
			tx.Balance.String(),
			tx.Quantity.String(),
		}
		if includeClerk {
			row = append(row, tx.CreatedByName)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
