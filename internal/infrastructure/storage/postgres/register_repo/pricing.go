// Package register_repo provides PostgreSQL implementations for the
// price sheet register and its change history.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/id"
	"quarryledger/internal/domain/pricing"
	"quarryledger/internal/infrastructure/storage/postgres"
)

const (
	priceTable   = "quarry_prices"
	historyTable = "price_history"
)

// PricingRepo implements pricing.Repository. The price sheet is keyed
// by the (quarry_id, product_id) pair; history rows are append-only.
type PricingRepo struct {
	tm          *postgres.TxManager
	priceCols   []string
	historyCols []string
}

// NewPricingRepo creates a new pricing repository.
func NewPricingRepo(tm *postgres.TxManager) *PricingRepo {
	return &PricingRepo{
		tm:          tm,
		priceCols:   postgres.ExtractDBColumns[pricing.QuarryPrice](),
		historyCols: postgres.ExtractDBColumns[pricing.CostHistory](),
	}
}

func (r *PricingRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// GetPrice returns the current rate for the pair.
func (r *PricingRepo) GetPrice(ctx context.Context, quarryID, productID id.ID) (*pricing.QuarryPrice, error) {
	price := &pricing.QuarryPrice{}

	sql, args, err := r.builder().
		Select(r.priceCols...).
		From(priceTable).
		Where(squirrel.Eq{"quarry_id": quarryID, "product_id": productID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.tm.GetQuerier(ctx), price, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(priceTable, quarryID.String()+"/"+productID.String())
		}
		return nil, fmt.Errorf("get price: %w", err)
	}
	return price, nil
}

// UpsertPrice inserts or replaces the rate for the pair.
func (r *PricingRepo) UpsertPrice(ctx context.Context, p *pricing.QuarryPrice) error {
	data := postgres.StructToMap(p)
	filtered := make(map[string]any, len(r.priceCols))
	for _, col := range r.priceCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(priceTable).
		SetMap(filtered).
		Suffix(`ON CONFLICT (quarry_id, product_id) DO UPDATE SET
			price = EXCLUDED.price,
			updated_by = EXCLUDED.updated_by,
			updated_by_name = EXCLUDED.updated_by_name,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", priceTable, err)
	}
	return nil
}

// ListByQuarry returns every priced product at a quarry.
func (r *PricingRepo) ListByQuarry(ctx context.Context, quarryID id.ID) ([]*pricing.QuarryPrice, error) {
	sql, args, err := r.builder().
		Select(r.priceCols...).
		From(priceTable).
		Where(squirrel.Eq{"quarry_id": quarryID}).
		OrderBy("product_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var prices []*pricing.QuarryPrice
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &prices, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", priceTable, err)
	}
	return prices, nil
}

// AppendHistory records one rate change.
func (r *PricingRepo) AppendHistory(ctx context.Context, h *pricing.CostHistory) error {
	data := postgres.StructToMap(h)
	filtered := make(map[string]any, len(r.historyCols))
	for _, col := range r.historyCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(historyTable).
		SetMap(filtered).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", historyTable, err)
	}
	return nil
}

// ListHistory returns change rows, newest first.
func (r *PricingRepo) ListHistory(ctx context.Context, limit int) ([]*pricing.CostHistory, error) {
	q := r.builder().
		Select(r.historyCols...).
		From(historyTable).
		OrderBy("date DESC")

	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []*pricing.CostHistory
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", historyTable, err)
	}
	return rows, nil
}
