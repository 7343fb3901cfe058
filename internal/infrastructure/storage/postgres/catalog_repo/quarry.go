package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"quarryledger/internal/core/id"
	"quarryledger/internal/core/security"
	"quarryledger/internal/domain"
	"quarryledger/internal/domain/catalogs/quarry"
	"quarryledger/internal/infrastructure/storage/postgres"
)

// QuarryRepo implements quarry.Repository.
type QuarryRepo struct {
	baseRepo[*quarry.Quarry]
}

// NewQuarryRepo creates a new quarry repository.
func NewQuarryRepo(tm *postgres.TxManager) *QuarryRepo {
	return &QuarryRepo{
		baseRepo: newBaseRepo(tm, "quarries", func() *quarry.Quarry {
			return &quarry.Quarry{}
		}),
	}
}

// Create inserts a new quarry.
func (r *QuarryRepo) Create(ctx context.Context, q *quarry.Quarry) error {
	return r.create(ctx, q)
}

// Update overwrites an existing quarry.
func (r *QuarryRepo) Update(ctx context.Context, q *quarry.Quarry) error {
	return r.update(ctx, q)
}

// Delete removes a quarry permanently.
func (r *QuarryRepo) Delete(ctx context.Context, quarryID id.ID) error {
	return r.hardDelete(ctx, quarryID)
}

// GetByID returns a quarry.
func (r *QuarryRepo) GetByID(ctx context.Context, quarryID id.ID) (*quarry.Quarry, error) {
	return r.getByID(ctx, quarryID)
}

// List returns quarries visible to scope. Clerks see their own sites
// plus ownerless ones.
func (r *QuarryRepo) List(ctx context.Context, filter domain.ListFilter, scope security.ViewScope) (domain.ListResult[*quarry.Quarry], error) {
	q := r.baseSelect()

	if !scope.IsAdmin() {
		q = q.Where(squirrel.Or{
			squirrel.Eq{"owner_id": ""},
			squirrel.Eq{"owner_id": scope.UserID()},
		})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"location": pattern},
		})
	}

	return r.runList(ctx, q, filter)
}
