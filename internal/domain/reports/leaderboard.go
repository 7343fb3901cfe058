package reports

import (
	"sort"

	"quarryledger/internal/core/types"
	"quarryledger/internal/domain/documents/sale"
)

// ClerkStat is one row of the admin leaderboard.
type ClerkStat struct {
	UserID     string         `json:"userId"`
	Name       string         `json:"name"`
	Revenue    types.Money    `json:"revenue"`
	Volume     types.Quantity `json:"volume"`
	TxCount    int            `json:"txCount"`
	TopProduct string         `json:"topProduct"`
}

// BuildLeaderboard groups transactions by creator and ranks clerks by
// revenue. The top product is the one bringing each clerk the most
// revenue across their line items.
func BuildLeaderboard(txs []*sale.Transaction) []ClerkStat {
	type group struct {
		stat         ClerkStat
		productStats map[string]types.Money
	}

	groups := make(map[string]*group)
	for _, tx := range txs {
		g, ok := groups[tx.CreatedBy]
		if !ok {
			name := tx.CreatedByName
			if name == "" {
				name = "Unknown Clerk"
			}
			g = &group{
				stat: ClerkStat{
					UserID:  tx.CreatedBy,
					Name:    name,
					Revenue: types.Zero(),
					Volume:  types.Zero(),
				},
				productStats: make(map[string]types.Money),
			}
			groups[tx.CreatedBy] = g
		}

		g.stat.Revenue = g.stat.Revenue.Add(tx.TotalInvoice)
		g.stat.Volume = g.stat.Volume.Add(tx.Quantity)
		g.stat.TxCount++

		for _, item := range tx.Items {
			current, ok := g.productStats[item.ProductName]
			if !ok {
				current = types.Zero()
			}
			g.productStats[item.ProductName] = current.Add(item.TotalInvoice)
		}
	}

	stats := make([]ClerkStat, 0, len(groups))
	for _, g := range groups {
		best := "N/A"
		bestRevenue := types.Zero()
		for name, revenue := range g.productStats {
			if revenue.GreaterThan(bestRevenue) {
				best = name
				bestRevenue = revenue
			}
		}
		g.stat.TopProduct = best
		stats = append(stats, g.stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Revenue.Equal(stats[j].Revenue) {
			return stats[i].Revenue.GreaterThan(stats[j].Revenue)
		}
		return stats[i].Name < stats[j].Name
	})
	return stats
}

// ProductSummary is one row of a clerk's personal product tracker.
type ProductSummary struct {
	Name     string         `json:"name"`
	Quantity types.Quantity `json:"quantity"`
	Revenue  types.Money    `json:"revenue"`
	Count    int            `json:"count"`
}

// BuildPersonalSummary sums a clerk's line items per product, ranked by
// revenue. Callers pass the clerk's own transactions.
func BuildPersonalSummary(txs []*sale.Transaction) []ProductSummary {
	byProduct := make(map[string]*ProductSummary)
	for _, tx := range txs {
		for _, item := range tx.Items {
			s, ok := byProduct[item.ProductName]
			if !ok {
				s = &ProductSummary{
					Name:     item.ProductName,
					Quantity: types.Zero(),
					Revenue:  types.Zero(),
				}
				byProduct[item.ProductName] = s
			}
			s.Quantity = s.Quantity.Add(item.Quantity)
			s.Revenue = s.Revenue.Add(item.TotalInvoice)
			s.Count++
		}
	}

	out := make([]ProductSummary, 0, len(byProduct))
	for _, s := range byProduct {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
