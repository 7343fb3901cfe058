// Package document_repo provides PostgreSQL implementations for
// document repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/id"
	"quarryledger/internal/core/security"
	"quarryledger/internal/domain/documents/sale"
	"quarryledger/internal/infrastructure/storage/postgres"
)

// SaleRepo implements sale.Repository. Line items live in a JSONB
// column; pgx marshals them transparently, so the row maps straight to
// the document struct.
type SaleRepo struct {
	tm         *postgres.TxManager
	selectCols []string
}

const saleTable = "transactions"

// NewSaleRepo creates a new sale transaction repository.
func NewSaleRepo(tm *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		tm:         tm,
		selectCols: postgres.ExtractDBColumns[sale.Transaction](),
	}
}

func (r *SaleRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *SaleRepo) rowMap(tx *sale.Transaction) (map[string]any, error) {
	data := postgres.StructToMap(tx)
	if len(data) == 0 {
		return nil, fmt.Errorf("no db tags found in transaction")
	}
	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}
	return filtered, nil
}

// Create inserts a new transaction.
func (r *SaleRepo) Create(ctx context.Context, tx *sale.Transaction) error {
	data, err := r.rowMap(tx)
	if err != nil {
		return err
	}

	sql, args, err := r.builder().
		Insert(saleTable).
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", saleTable, err)
	}
	return nil
}

// Update overwrites an existing transaction. RefNo and Date are written
// back unchanged; the service guarantees they never drift.
func (r *SaleRepo) Update(ctx context.Context, tx *sale.Transaction) error {
	data, err := r.rowMap(tx)
	if err != nil {
		return err
	}
	delete(data, "id")

	sql, args, err := r.builder().
		Update(saleTable).
		SetMap(data).
		Where(squirrel.Eq{"id": tx.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", saleTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(saleTable, tx.ID.String())
	}
	return nil
}

// Delete removes a transaction permanently.
func (r *SaleRepo) Delete(ctx context.Context, txID id.ID) error {
	sql, args, err := r.builder().
		Delete(saleTable).
		Where(squirrel.Eq{"id": txID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.tm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", saleTable, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(saleTable, txID.String())
	}
	return nil
}

// GetByID returns a transaction.
func (r *SaleRepo) GetByID(ctx context.Context, txID id.ID) (*sale.Transaction, error) {
	tx := &sale.Transaction{}

	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"id": txID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.tm.GetQuerier(ctx), tx, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(saleTable, txID.String())
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return tx, nil
}

// List returns transactions visible to scope, newest first.
func (r *SaleRepo) List(ctx context.Context, filter sale.Filter, scope security.ViewScope) ([]*sale.Transaction, error) {
	q := r.baseSelect()

	if !scope.IsAdmin() {
		q = q.Where(squirrel.Eq{"created_by": scope.UserID()})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"ref_no": pattern},
			squirrel.ILike{"customer_name": pattern},
		})
	}
	if filter.CustomerID != "" {
		q = q.Where(squirrel.Eq{"customer_id": filter.CustomerID})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.To})
	}

	q = q.OrderBy("date DESC", "ref_no DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	return r.selectMany(ctx, q)
}

// ListByCustomer returns the full history of one customer, oldest
// first. Unscoped: the running balance is computed over every
// transaction regardless of who views it.
func (r *SaleRepo) ListByCustomer(ctx context.Context, customerID string) ([]*sale.Transaction, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("date ASC", "created_at ASC")

	return r.selectMany(ctx, q)
}

func (r *SaleRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(saleTable)
}

func (r *SaleRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*sale.Transaction, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var txs []*sale.Transaction
	if err := pgxscan.Select(ctx, r.tm.GetQuerier(ctx), &txs, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", saleTable, err)
	}
	return txs, nil
}
