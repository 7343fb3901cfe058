package reports

import (
	"sort"
	"strings"
	"time"

	"quarryledger/internal/core/types"
	"quarryledger/internal/domain/documents/sale"
)

// MonthlyAnalytics is the month view: totals, outstanding positions and
// daily trend.
type MonthlyAnalytics struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	Revenue types.Money    `json:"revenue"`
	Volume  types.Quantity `json:"volume"`
	Profit  types.Money    `json:"profit"`

	// Receivables sums |balance| over transactions whose stored closing
	// balance is negative (customers owing); Credits sums the positive
	// ones.
	Receivables types.Money `json:"receivables"`
	Credits     types.Money `json:"credits"`

	DailyTrend   []TrendPoint   `json:"dailyTrend"`
	ProductShare []ProductSlice `json:"productShare"`
}

// TrendPoint is one day of the revenue and profit trend.
type TrendPoint struct {
	Day     int         `json:"day"`
	Revenue types.Money `json:"revenue"`
	Profit  types.Money `json:"profit"`
}

// ProductSlice is one product's share of the month's revenue.
type ProductSlice struct {
	Name    string      `json:"name"`
	Revenue types.Money `json:"revenue"`
}

// FilterMonth keeps transactions dated in the given month, optionally
// narrowed by a case-insensitive clerk name search.
func FilterMonth(txs []*sale.Transaction, year, month int, clerkSearch string) []*sale.Transaction {
	clerkSearch = strings.ToLower(strings.TrimSpace(clerkSearch))

	var out []*sale.Transaction
	for _, tx := range txs {
		d := tx.Date.UTC()
		if d.Year() != year || int(d.Month()) != month {
			continue
		}
		if clerkSearch != "" && !strings.Contains(strings.ToLower(tx.CreatedByName), clerkSearch) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// BuildMonthly computes the analytics view over scoped transactions.
func BuildMonthly(txs []*sale.Transaction, year, month int, clerkSearch string) MonthlyAnalytics {
	filtered := FilterMonth(txs, year, month, clerkSearch)

	a := MonthlyAnalytics{
		Year:        year,
		Month:       month,
		Revenue:     types.Zero(),
		Volume:      types.Zero(),
		Profit:      types.Zero(),
		Receivables: types.Zero(),
		Credits:     types.Zero(),
	}

	for _, tx := range filtered {
		a.Revenue = a.Revenue.Add(tx.TotalInvoice)
		a.Volume = a.Volume.Add(tx.Quantity)
		a.Profit = a.Profit.Add(tx.Profit)

		if tx.Balance.IsNegative() {
			a.Receivables = a.Receivables.Add(tx.Balance.Abs())
		} else if tx.Balance.IsPositive() {
			a.Credits = a.Credits.Add(tx.Balance)
		}
	}

	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	a.DailyTrend = make([]TrendPoint, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		point := TrendPoint{Day: day, Revenue: types.Zero(), Profit: types.Zero()}
		for _, tx := range filtered {
			if tx.Date.UTC().Day() == day {
				point.Revenue = point.Revenue.Add(tx.TotalInvoice)
				point.Profit = point.Profit.Add(tx.Profit)
			}
		}
		a.DailyTrend = append(a.DailyTrend, point)
	}

	byProduct := make(map[string]types.Money)
	for _, tx := range filtered {
		for _, item := range tx.Items {
			current, ok := byProduct[item.ProductName]
			if !ok {
				current = types.Zero()
			}
			byProduct[item.ProductName] = current.Add(item.TotalInvoice)
		}
	}
	for name, revenue := range byProduct {
		a.ProductShare = append(a.ProductShare, ProductSlice{Name: name, Revenue: revenue})
	}
	sort.Slice(a.ProductShare, func(i, j int) bool {
		if !a.ProductShare[i].Revenue.Equal(a.ProductShare[j].Revenue) {
			return a.ProductShare[i].Revenue.GreaterThan(a.ProductShare[j].Revenue)
		}
		return a.ProductShare[i].Name < a.ProductShare[j].Name
	})

	return a
}
