package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/id"
	"quarryledger/internal/core/security"
	"quarryledger/internal/domain"
	"quarryledger/internal/domain/catalogs/customer"
	"quarryledger/internal/infrastructure/storage/postgres"
)

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	baseRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(tm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		baseRepo: newBaseRepo(tm, "customers", func() *customer.Customer {
			return &customer.Customer{}
		}),
	}
}

// Create inserts a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	return r.create(ctx, c)
}

// Update overwrites an existing customer.
func (r *CustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	return r.update(ctx, c)
}

// Delete removes a customer permanently.
func (r *CustomerRepo) Delete(ctx context.Context, customerID id.ID) error {
	return r.hardDelete(ctx, customerID)
}

// GetByID returns a customer.
func (r *CustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	return r.getByID(ctx, customerID)
}

// List returns customers visible to scope.
func (r *CustomerRepo) List(ctx context.Context, filter domain.ListFilter, scope security.ViewScope) (domain.ListResult[*customer.Customer], error) {
	q := r.baseSelect()

	if !scope.IsAdmin() {
		q = q.Where(squirrel.Eq{"created_by": scope.UserID()})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"phone": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	return r.runList(ctx, q, filter)
}

// IncrementTransactionCount bumps the counter by delta. The counter
// never goes below zero.
func (r *CustomerRepo) IncrementTransactionCount(ctx context.Context, customerID id.ID, delta int) error {
	sql := fmt.Sprintf(
		"UPDATE %s SET transaction_count = GREATEST(0, transaction_count + $1) WHERE id = $2",
		r.tableName,
	)

	result, err := r.querier(ctx).Exec(ctx, sql, delta, customerID)
	if err != nil {
		return fmt.Errorf("increment transaction_count: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, customerID.String())
	}
	return nil
}
