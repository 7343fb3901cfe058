package pricing

import (
	"context"
	"fmt"
	"time"

	"quarryledger/internal/core/apperror"
	appctx "quarryledger/internal/core/context"
	"quarryledger/internal/core/id"
	"quarryledger/internal/core/types"
	"quarryledger/internal/domain/audit"
	"quarryledger/internal/domain/catalogs/product"
	"quarryledger/internal/domain/catalogs/quarry"
	"quarryledger/internal/realtime"
)

// ProductLookup resolves products for name denormalization and the
// active check.
type ProductLookup interface {
	Get(ctx context.Context, productID id.ID) (*product.Product, error)
}

// QuarryLookup resolves quarries for name denormalization.
type QuarryLookup interface {
	Get(ctx context.Context, quarryID id.ID) (*quarry.Quarry, error)
}

// Service maintains the price sheets.
type Service struct {
	repo     Repository
	products ProductLookup
	quarries QuarryLookup
	recorder *audit.Recorder
	hub      *realtime.Hub
}

// NewService creates a new pricing service.
func NewService(repo Repository, products ProductLookup, quarries QuarryLookup, recorder *audit.Recorder, hub *realtime.Hub) *Service {
	return &Service{
		repo:     repo,
		products: products,
		quarries: quarries,
		recorder: recorder,
		hub:      hub,
	}
}

// SetPrice records newPrice as the current rate for the product at the
// quarry. A history row is written only when an existing rate actually
// changes; the first rate for a pair and a re-save of an equal rate
// leave history untouched. The current rate row is always rewritten so
// UpdatedBy and UpdatedAt reflect the latest save, and an UPDATE_PRICE
// audit entry is always recorded.
func (s *Service) SetPrice(ctx context.Context, quarryID, productID id.ID, newPrice types.Money) error {
	if newPrice.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	productName := s.productName(ctx, productID)
	quarryName := s.quarryName(ctx, quarryID)

	existing, err := s.repo.GetPrice(ctx, quarryID, productID)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}

	if existing != nil && !existing.Price.Equal(newPrice) {
		history := &CostHistory{
			ID:          id.New(),
			ProductID:   productID,
			QuarryID:    quarryID,
			ProductName: productName,
			QuarryName:  quarryName,
			OldPrice:    existing.Price,
			NewPrice:    newPrice,
			ChangedBy:   appctx.GetUserName(ctx),
			Date:        time.Now().UTC(),
		}
		if err := s.repo.AppendHistory(ctx, history); err != nil {
			return err
		}
		s.hub.Publish(realtime.CollectionPriceHistory)
	}

	current := &QuarryPrice{
		QuarryID:      quarryID,
		ProductID:     productID,
		Price:         newPrice,
		UpdatedBy:     appctx.GetUserID(ctx),
		UpdatedByName: appctx.GetUserName(ctx),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := s.repo.UpsertPrice(ctx, current); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionUpdatePrice, audit.EntityQuarryPrice, productName,
		fmt.Sprintf("Set rate for %s at %s to %s", productName, quarryName, newPrice.String()))
	s.hub.Publish(realtime.CollectionQuarryPrices)
	return nil
}

// GetPrice returns the current rate for the pair.
func (s *Service) GetPrice(ctx context.Context, quarryID, productID id.ID) (*QuarryPrice, error) {
	return s.repo.GetPrice(ctx, quarryID, productID)
}

// PriceSheet returns every priced product at a quarry.
func (s *Service) PriceSheet(ctx context.Context, quarryID id.ID) ([]*QuarryPrice, error) {
	return s.repo.ListByQuarry(ctx, quarryID)
}

// AvailableProducts returns the active products priced at a quarry,
// with the current rate for prefilling a sale line. Deleted products
// are skipped.
func (s *Service) AvailableProducts(ctx context.Context, quarryID id.ID) ([]PriceOption, error) {
	prices, err := s.repo.ListByQuarry(ctx, quarryID)
	if err != nil {
		return nil, err
	}

	options := make([]PriceOption, 0, len(prices))
	for _, p := range prices {
		prod, err := s.products.Get(ctx, p.ProductID)
		if err != nil || prod.IsDeleted {
			continue
		}
		options = append(options, PriceOption{
			ProductID:   p.ProductID,
			ProductName: prod.Name,
			Price:       p.Price,
		})
	}
	return options, nil
}

// History returns rate changes, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]*CostHistory, error) {
	return s.repo.ListHistory(ctx, limit)
}

func (s *Service) productName(ctx context.Context, productID id.ID) string {
	if p, err := s.products.Get(ctx, productID); err == nil {
		return p.Name
	}
	return productID.String()
}

func (s *Service) quarryName(ctx context.Context, quarryID id.ID) string {
	if q, err := s.quarries.Get(ctx, quarryID); err == nil {
		return q.Name
	}
	return quarryID.String()
}
