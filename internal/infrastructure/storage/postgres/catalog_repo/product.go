package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"quarryledger/internal/core/id"
	"quarryledger/internal/domain"
	"quarryledger/internal/domain/catalogs/product"
	"quarryledger/internal/infrastructure/storage/postgres"
)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	baseRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(tm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		baseRepo: newBaseRepo(tm, "products", func() *product.Product {
			return &product.Product{}
		}),
	}
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	return r.create(ctx, p)
}

// Update overwrites an existing product.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	return r.update(ctx, p)
}

// GetByID returns a product, including soft-deleted ones. Historical
// transaction lines still need their names to resolve.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	return r.getByID(ctx, productID)
}

// List returns products matching the filter.
func (r *ProductRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"is_deleted": false})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	return r.runList(ctx, q, filter)
}
