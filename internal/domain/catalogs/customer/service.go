package customer

import (
	"context"
	"fmt"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/id"
	"quarryledger/internal/core/security"
	"quarryledger/internal/domain"
	"quarryledger/internal/domain/audit"
	"quarryledger/internal/realtime"
)

// Service provides business logic for the customer catalog.
type Service struct {
	repo     Repository
	recorder *audit.Recorder
	hub      *realtime.Hub
}

// NewService creates a new Customer service.
func NewService(repo Repository, recorder *audit.Recorder, hub *realtime.Hub) *Service {
	return &Service{repo: repo, recorder: recorder, hub: hub}
}

// Create validates and persists a new customer.
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(c.ID) {
		c.ID = id.New()
	}
	c.StampCreator(ctx)

	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionCreate, audit.EntityCustomer, c.Name,
		fmt.Sprintf("Created customer %q (%s)", c.Name, c.Phone))
	s.hub.Publish(realtime.CollectionCustomers)
	return nil
}

// Update persists changes to an existing customer. Attribution and the
// transaction counter are preserved from the stored record.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if !security.ScopeFromContext(ctx).CanSee(existing.CreatedBy) {
		return apperror.NewForbidden("customer belongs to another user")
	}
	c.Owned = existing.Owned
	c.TransactionCount = existing.TransactionCount

	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionUpdate, audit.EntityCustomer, c.Name,
		fmt.Sprintf("Updated customer %q", c.Name))
	s.hub.Publish(realtime.CollectionCustomers)
	return nil
}

// Delete removes a customer. Past transactions keep their denormalized
// customer snapshot, so history stays readable.
func (s *Service) Delete(ctx context.Context, customerID id.ID) error {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if !security.ScopeFromContext(ctx).CanSee(c.CreatedBy) {
		return apperror.NewForbidden("customer belongs to another user")
	}

	if err := s.repo.Delete(ctx, customerID); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionDelete, audit.EntityCustomer, c.Name,
		fmt.Sprintf("Deleted customer %q", c.Name))
	s.hub.Publish(realtime.CollectionCustomers)
	return nil
}

// Get returns a customer by id, subject to the caller's scope.
func (s *Service) Get(ctx context.Context, customerID id.ID) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !security.ScopeFromContext(ctx).CanSee(c.CreatedBy) {
		return nil, apperror.NewForbidden("customer belongs to another user")
	}
	return c, nil
}

// List returns customers visible to the authenticated user.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Customer], error) {
	return s.repo.List(ctx, filter, security.ScopeFromContext(ctx))
}

// RecordTransaction bumps the customer's transaction counter after a
// sale is created against them.
func (s *Service) RecordTransaction(ctx context.Context, customerID id.ID) error {
	if err := s.repo.IncrementTransactionCount(ctx, customerID, 1); err != nil {
		return err
	}
	s.hub.Publish(realtime.CollectionCustomers)
	return nil
}
