package reports

import (
	"context"
	"io"
	"time"

	appctx "quarryledger/internal/core/context"
	"quarryledger/internal/domain"
	"quarryledger/internal/domain/catalogs/customer"
	"quarryledger/internal/domain/catalogs/quarry"
	"quarryledger/internal/domain/documents/sale"
)

// revenueSeriesDays is the length of the dashboard trend.
const revenueSeriesDays = 14

// Ledger supplies scope-filtered transactions.
type Ledger interface {
	List(ctx context.Context, filter sale.Filter) ([]*sale.Transaction, error)
}

// CustomerLister supplies scope-filtered customers.
type CustomerLister interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*customer.Customer], error)
}

// QuarryLister supplies scope-filtered quarries.
type QuarryLister interface {
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*quarry.Quarry], error)
}

// Service assembles report views. Scope is applied by the underlying
// listers before any aggregation here, so totals never leak records
// the viewer cannot see.
type Service struct {
	ledger    Ledger
	customers CustomerLister
	quarries  QuarryLister

	now func() time.Time
}

// NewService creates a reports service.
func NewService(ledger Ledger, customers CustomerLister, quarries QuarryLister) *Service {
	return &Service{
		ledger:    ledger,
		customers: customers,
		quarries:  quarries,
		now:       time.Now,
	}
}

// Dashboard computes the landing KPI set for the viewer.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	txs, err := s.ledger.List(ctx, sale.Filter{})
	if err != nil {
		return DashboardStats{}, err
	}

	customers, err := s.customers.List(ctx, domain.ListFilter{})
	if err != nil {
		return DashboardStats{}, err
	}
	quarries, err := s.quarries.List(ctx, domain.ListFilter{})
	if err != nil {
		return DashboardStats{}, err
	}

	return BuildDashboard(txs, int(customers.TotalCount), int(quarries.TotalCount), s.now(), revenueSeriesDays), nil
}

// Monthly computes the analytics view for a month.
func (s *Service) Monthly(ctx context.Context, year, month int, clerkSearch string) (MonthlyAnalytics, error) {
	txs, err := s.ledger.List(ctx, sale.Filter{})
	if err != nil {
		return MonthlyAnalytics{}, err
	}
	return BuildMonthly(txs, year, month, clerkSearch), nil
}

// Leaderboard ranks clerks by revenue. The scoped transaction list
// means a clerk calling this only ever ranks themselves; handlers
// restrict it to admins.
func (s *Service) Leaderboard(ctx context.Context) ([]ClerkStat, error) {
	txs, err := s.ledger.List(ctx, sale.Filter{})
	if err != nil {
		return nil, err
	}
	return BuildLeaderboard(txs), nil
}

// PersonalSummary is the viewer's per-product sales tracker.
func (s *Service) PersonalSummary(ctx context.Context) ([]ProductSummary, error) {
	txs, err := s.ledger.List(ctx, sale.Filter{})
	if err != nil {
		return nil, err
	}
	return BuildPersonalSummary(txs), nil
}

// CustomerBalances derives every visible customer's standing.
func (s *Service) CustomerBalances(ctx context.Context) ([]CustomerBalance, error) {
	txs, err := s.ledger.List(ctx, sale.Filter{})
	if err != nil {
		return nil, err
	}
	return BuildCustomerBalances(txs), nil
}

// MaterialsSummary totals one customer's line items by product.
func (s *Service) MaterialsSummary(ctx context.Context, customerID string) ([]MaterialLine, error) {
	txs, err := s.ledger.List(ctx, sale.Filter{CustomerID: customerID})
	if err != nil {
		return nil, err
	}
	return BuildMaterialsSummary(txs, customerID), nil
}

// ExportCSV streams the month's scoped transactions. The clerk column
// appears only for admin viewers.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer, year, month int, clerkSearch string) error {
	txs, err := s.ledger.List(ctx, sale.Filter{})
	if err != nil {
		return err
	}
	filtered := FilterMonth(txs, year, month, clerkSearch)

	user := appctx.GetUser(ctx)
	includeClerk := user.IsAdmin()
	return WriteCSV(w, filtered, includeClerk)
}
