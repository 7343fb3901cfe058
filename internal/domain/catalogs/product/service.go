package product

import (
	"context"
	"fmt"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/id"
	"quarryledger/internal/domain"
	"quarryledger/internal/domain/audit"
	"quarryledger/internal/realtime"
)

// Service provides business logic for the product catalog.
type Service struct {
	repo     Repository
	recorder *audit.Recorder
	hub      *realtime.Hub
}

// NewService creates a new Product service.
func NewService(repo Repository, recorder *audit.Recorder, hub *realtime.Hub) *Service {
	return &Service{repo: repo, recorder: recorder, hub: hub}
}

// Create validates and persists a new product.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(p.ID) {
		p.ID = id.New()
	}
	p.StampCreator(ctx)

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionCreate, audit.EntityProduct, p.Name,
		fmt.Sprintf("Created product %q", p.Name))
	s.hub.Publish(realtime.CollectionProducts)
	return nil
}

// Update persists changes to an existing product. Creator attribution
// and deletion state are preserved from the stored record.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.IsDeleted {
		return apperror.NewBusinessRule(apperror.CodeProductRetired, "cannot update a deleted product").
			WithDetail("productId", p.ID)
	}
	p.Owned = existing.Owned
	p.SoftDelete = existing.SoftDelete

	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionUpdate, audit.EntityProduct, p.Name,
		fmt.Sprintf("Updated product %q", p.Name))
	s.hub.Publish(realtime.CollectionProducts)
	return nil
}

// Delete soft-deletes a product. The record survives so historical
// transaction lines and price history keep resolving.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.IsDeleted {
		return nil
	}

	p.MarkDeleted()
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionDelete, audit.EntityProduct, p.Name,
		fmt.Sprintf("Deleted product %q", p.Name))
	s.hub.Publish(realtime.CollectionProducts)
	return nil
}

// Get returns a product by id, including soft-deleted ones.
func (s *Service) Get(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// List returns products. Deleted products are excluded unless the
// filter asks for them.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.List(ctx, filter)
}
