package quarry

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

// OwnerResolver resolves a user id to a display name for the
// denormalized OwnerName field.
type OwnerResolver interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// Service provides business logic for the quarry catalog.
type Service struct {
	repo     Repository
	owners   OwnerResolver
	recorder *audit.Recorder
	hub      *realtime.Hub
}

// NewService creates a new Quarry service. owners may be nil when owner
// names are supplied by the caller.
func NewService(repo Repository, owners OwnerResolver, recorder *audit.Recorder, hub *realtime.Hub) *Service {
	return &Service{repo: repo, owners: owners, recorder: recorder, hub: hub}
}

// Create validates and persists a new quarry.
func (s *Service) Create(ctx context.Context, q *Quarry) error {
	if err := q.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(q.ID) {
		q.ID = id.New()
	}
	s.resolveOwnerName(ctx, q)

	if err := s.repo.Create(ctx, q); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionCreate, audit.EntityQuarry, q.Name,
		fmt.Sprintf("Created quarry %q at %s", q.Name, q.Location))
	s.hub.Publish(realtime.CollectionQuarries)
	return nil
}

// Update persists changes to an existing quarry, including owner
// reassignment.
func (s *Service) Update(ctx context.Context, q *Quarry) error {
	if err := q.Validate(ctx); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, q.ID)
	if err != nil {
		return err
	}
	if !security.ScopeFromContext(ctx).CanSeeQuarry(existing.OwnerID) {
		return apperror.NewForbidden("quarry belongs to another user")
	}
	s.resolveOwnerName(ctx, q)

	if err := s.repo.Update(ctx, q); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionUpdate, audit.EntityQuarry, q.Name,
		fmt.Sprintf("Updated quarry %q", q.Name))
	s.hub.Publish(realtime.CollectionQuarries)
	return nil
}

// Delete removes a quarry. Price sheet rows for the site stay behind;
// readers fall back to the raw id once the name stops resolving.
func (s *Service) Delete(ctx context.Context, quarryID id.ID) error {
	q, err := s.repo.GetByID(ctx, quarryID)
	if err != nil {
		return err
	}
	if !security.ScopeFromContext(ctx).CanSeeQuarry(q.OwnerID) {
		return apperror.NewForbidden("quarry belongs to another user")
	}

	if err := s.repo.Delete(ctx, quarryID); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionDelete, audit.EntityQuarry, q.Name,
		fmt.Sprintf("Deleted quarry %q", q.Name))
	s.hub.Publish(realtime.CollectionQuarries)
	return nil
}

// Get returns a quarry by id, subject to the caller's scope. Ownerless
// sites stay visible to every clerk.
func (s *Service) Get(ctx context.Context, quarryID id.ID) (*Quarry, error) {
	q, err := s.repo.GetByID(ctx, quarryID)
	if err != nil {
		return nil, err
	}
	if !security.ScopeFromContext(ctx).CanSeeQuarry(q.OwnerID) {
		return nil, apperror.NewForbidden("quarry belongs to another user")
	}
	return q, nil
}

// List returns quarries visible to the authenticated user.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Quarry], error) {
	return s.repo.List(ctx, filter, security.ScopeFromContext(ctx))
}

func (s *Service) resolveOwnerName(ctx context.Context, q *Quarry) {
	if q.OwnerID == "" {
		q.OwnerName = ""
		return
	}
	if q.OwnerName != "" || s.owners == nil {
		return
	}
	if name, err := s.owners.DisplayName(ctx, q.OwnerID); err == nil {
		q.OwnerName = name
	}
}
