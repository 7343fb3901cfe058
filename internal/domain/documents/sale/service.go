package sale

import (
	"context"
	"fmt"
	"time"

	"quarryledger/internal/core/apperror"
	"quarryledger/internal/core/id"
	"quarryledger/internal/core/security"
	"quarryledger/internal/core/types"
	"quarryledger/internal/domain/audit"
	"quarryledger/internal/domain/catalogs/customer"
	"quarryledger/internal/realtime"
	"quarryledger/pkg/logger"
	"quarryledger/pkg/numerator"
)

// CustomerDirectory resolves customers for detail snapshotting and
// keeps their transaction counter.
type CustomerDirectory interface {
	Get(ctx context.Context, customerID id.ID) (*customer.Customer, error)
	RecordTransaction(ctx context.Context, customerID id.ID) error
}

// Service provides business logic for sale transactions.
type Service struct {
	repo      Repository
	customers CustomerDirectory
	numbers   numerator.Generator
	recorder  *audit.Recorder
	hub       *realtime.Hub
}

// NewService creates a new sale service.
func NewService(repo Repository, customers CustomerDirectory, numbers numerator.Generator, recorder *audit.Recorder, hub *realtime.Hub) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		numbers:   numbers,
		recorder:  recorder,
		hub:       hub,
	}
}

// Create posts a new transaction: validates, computes line and
// aggregate figures, assigns the ref number and closing balance, and
// persists. Nothing is written when validation fails.
func (s *Service) Create(ctx context.Context, tx *Transaction) error {
	if err := tx.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(tx.ID) {
		tx.ID = id.New()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now().UTC()
	}
	tx.StampCreator(ctx)
	s.snapshotCustomer(ctx, tx)
	s.compute(tx)

	if tx.RefNo == "" {
		refNo, err := s.numbers.GetNextNumber(ctx, numerator.DefaultConfig("TX"), nil, tx.Date)
		if err != nil {
			return fmt.Errorf("assign ref number: %w", err)
		}
		tx.RefNo = refNo
	}

	standing, err := s.openingStanding(ctx, tx.CustomerID, id.Nil())
	if err != nil {
		return err
	}
	tx.Balance = ClosingBalance(standing, tx.TotalInvoice, tx.Deposit)

	if err := s.repo.Create(ctx, tx); err != nil {
		return err
	}

	s.bumpCustomerCounter(ctx, tx.CustomerID)

	s.recorder.Record(ctx, audit.ActionCreate, audit.EntityTransaction, tx.RefNo,
		fmt.Sprintf("Created transaction %s for %s, invoice %s", tx.RefNo, tx.CustomerName, tx.TotalInvoice.String()))
	s.hub.Publish(realtime.CollectionTransactions)
	return nil
}

// Update reposts an edited transaction. The ref number, original date
// and creator attribution are immutable; everything else is recomputed
// from the submitted lines. The document's own previous figures are
// excluded from the balance math.
func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	if err := tx.Validate(ctx); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, tx.ID)
	if err != nil {
		return err
	}
	if !security.ScopeFromContext(ctx).CanSee(existing.CreatedBy) {
		return apperror.NewForbidden("transaction belongs to another user")
	}

	tx.RefNo = existing.RefNo
	tx.Date = existing.Date
	tx.Owned = existing.Owned
	s.snapshotCustomer(ctx, tx)
	s.compute(tx)

	standing, err := s.openingStanding(ctx, tx.CustomerID, tx.ID)
	if err != nil {
		return err
	}
	tx.Balance = ClosingBalance(standing, tx.TotalInvoice, tx.Deposit)

	if err := s.repo.Update(ctx, tx); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionUpdate, audit.EntityTransaction, tx.RefNo,
		fmt.Sprintf("Updated transaction %s for %s", tx.RefNo, tx.CustomerName))
	s.hub.Publish(realtime.CollectionTransactions)
	return nil
}

// Delete removes a transaction.
func (s *Service) Delete(ctx context.Context, txID id.ID) error {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return err
	}
	if !security.ScopeFromContext(ctx).CanSee(tx.CreatedBy) {
		return apperror.NewForbidden("transaction belongs to another user")
	}

	if err := s.repo.Delete(ctx, txID); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.ActionDelete, audit.EntityTransaction, tx.RefNo,
		fmt.Sprintf("Deleted transaction %s for %s", tx.RefNo, tx.CustomerName))
	s.hub.Publish(realtime.CollectionTransactions)
	return nil
}

// Get returns one transaction, subject to the caller's scope.
func (s *Service) Get(ctx context.Context, txID id.ID) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if !security.ScopeFromContext(ctx).CanSee(tx.CreatedBy) {
		return nil, apperror.NewForbidden("transaction belongs to another user")
	}
	return tx, nil
}

// List returns transactions visible to the caller, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Transaction, error) {
	return s.repo.List(ctx, filter, security.ScopeFromContext(ctx))
}

// CustomerBalance is the customer's running standing: the sum of
// (deposit - totalInvoice) over all their transactions. Negative means
// the customer owes.
func (s *Service) CustomerBalance(ctx context.Context, customerID string) (types.Money, error) {
	return s.openingStanding(ctx, customerID, id.Nil())
}

// PreviewClosingBalance computes the balance a document would post
// with, before saving. excludeID is the document's own id on edit, nil
// on create.
func (s *Service) PreviewClosingBalance(ctx context.Context, customerID string, excludeID id.ID, invoiceTotal, deposit types.Money) (types.Money, error) {
	standing, err := s.openingStanding(ctx, customerID, excludeID)
	if err != nil {
		return types.Zero(), err
	}
	return ClosingBalance(standing, invoiceTotal, deposit), nil
}

func (s *Service) compute(tx *Transaction) {
	for i := range tx.Items {
		tx.Items[i] = ComputeLine(tx.Items[i])
	}
	agg := ComputeAggregates(tx.Items)
	tx.TotalInvoice = agg.TotalInvoice
	tx.TotalPurchaseCost = agg.TotalPurchaseCost
	tx.Quantity = agg.Quantity
	tx.Profit = agg.Profit
}

func (s *Service) openingStanding(ctx context.Context, customerID string, excludeID id.ID) (types.Money, error) {
	history, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return types.Zero(), err
	}
	return OpeningStanding(history, customerID, excludeID), nil
}

// snapshotCustomer freezes the customer's details onto the document so
// later customer edits or deletion never rewrite posted history.
func (s *Service) snapshotCustomer(ctx context.Context, tx *Transaction) {
	customerID, err := id.Parse(tx.CustomerID)
	if err != nil {
		return
	}
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return
	}
	tx.CustomerName = c.Name
	tx.CustomerPhone = c.Phone
	tx.CustomerEmail = c.Email
}

func (s *Service) bumpCustomerCounter(ctx context.Context, rawCustomerID string) {
	customerID, err := id.Parse(rawCustomerID)
	if err != nil {
		return
	}
	if err := s.customers.RecordTransaction(ctx, customerID); err != nil {
		logger.Warn(ctx, "customer transaction counter update failed",
			"customer_id", rawCustomerID, "error", err)
	}
}
