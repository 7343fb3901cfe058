// Package reports computes role-scoped aggregates over ledger
// snapshots. Every function here is pure: callers pass transactions
// already narrowed to the viewer's scope, and totals are recomputed in
// full on each call.
package reports

import (
	"time"

	"quarryledger/internal/core/types"
	"quarryledger/internal/domain/documents/sale"
)

// DashboardStats is the KPI row of the landing screen.
type DashboardStats struct {
	TodayTxCount  int            `json:"todayTxCount"`
	TodaySales    types.Money    `json:"todaySales"`
	TotalRevenue  types.Money    `json:"totalRevenue"`
	CustomerCount int            `json:"customerCount"`
	QuarryCount   int            `json:"quarryCount"`
	RevenueSeries []RevenuePoint `json:"revenueSeries"`
}

// RevenuePoint is one day of the revenue series.
type RevenuePoint struct {
	Date    string      `json:"date"`
	Revenue types.Money `json:"revenue"`
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// BuildDashboard computes the KPI set from scoped transactions. days is
// the length of the trailing revenue series, ending today.
func BuildDashboard(txs []*sale.Transaction, customerCount, quarryCount int, now time.Time, days int) DashboardStats {
	stats := DashboardStats{
		TodaySales:    types.Zero(),
		TotalRevenue:  types.Zero(),
		CustomerCount: customerCount,
		QuarryCount:   quarryCount,
	}

	for _, tx := range txs {
		stats.TotalRevenue = stats.TotalRevenue.Add(tx.TotalInvoice)
		if sameDay(tx.Date, now) {
			stats.TodayTxCount++
			stats.TodaySales = stats.TodaySales.Add(tx.TotalInvoice)
		}
	}

	stats.RevenueSeries = make([]RevenuePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		total := types.Zero()
		for _, tx := range txs {
			if sameDay(tx.Date, day) {
				total = total.Add(tx.TotalInvoice)
			}
		}
		stats.RevenueSeries = append(stats.RevenueSeries, RevenuePoint{
			Date:    day.UTC().Format("2006-01-02"),
			Revenue: total,
		})
	}

	return stats
}
