package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mandi_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

// ledgerService derives report views from the stored transactions.
// It never writes; every view is recomputed from the ledger on each call.
type ledgerService struct {
	BaseService
	txnRepo portsrepo.TransactionReader
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerLogger sets the logger used outside request scope.
func WithLedgerLogger(logger *slog.Logger) LedgerServiceOption {
	return func(s *ledgerService) {
		s.Logger = logger
	}
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repo portsrepo.TransactionReader, options ...LedgerServiceOption) portssvc.LedgerSvc {
	svc := &ledgerService{
		txnRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure ledgerService implements the LedgerSvc interface
var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) loadAll(ctx context.Context, operation string) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, domain.TransactionFilter{})
	if err != nil {
		s.reportFailure(ctx, operation, err)
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return txns, nil
}

// Summary returns global buy/sell totals and counts.
func (s *ledgerService) Summary(ctx context.Context) (*domain.Summary, error) {
	txns, err := s.loadAll(ctx, "summary")
	if err != nil {
		return nil, err
	}
	summary := accounting.Summarize(txns)
	return &summary, nil
}

// PartyLedger returns the per-counterparty balances for a role.
func (s *ledgerService) PartyLedger(ctx context.Context, role domain.PartyRole) ([]domain.PartyBalance, error) {
	if role != domain.RoleBuyer && role != domain.RoleSeller {
		err := apperrors.NewValidationError(fmt.Sprintf("Unknown ledger role %q", role))
		s.reportFailure(ctx, "party_ledger", err)
		return nil, err
	}
	txns, err := s.loadAll(ctx, "party_ledger")
	if err != nil {
		return nil, err
	}
	return accounting.PartyLedger(txns, role), nil
}

// Expenses returns the split between base amounts and the trader's own charges.
func (s *ledgerService) Expenses(ctx context.Context) (*domain.ExpenseBreakdown, error) {
	txns, err := s.loadAll(ctx, "expenses")
	if err != nil {
		return nil, err
	}
	breakdown := accounting.ExpenseBreakdown(txns)
	return &breakdown, nil
}

// PendingInventory returns the unsold purchase lots.
func (s *ledgerService) PendingInventory(ctx context.Context) (*domain.PendingInventory, error) {
	pending, err := s.txnRepo.ListPendingTransactions(ctx)
	if err != nil {
		s.reportFailure(ctx, "pending_inventory", err)
		return nil, fmt.Errorf("failed to load pending transactions: %w", err)
	}
	inv := accounting.PendingInventory(pending)
	return &inv, nil
}

// Dashboard loads the ledger and the pending lots concurrently and computes every view.
func (s *ledgerService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var all, pending []domain.Transaction

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = s.txnRepo.ListTransactions(gctx, domain.TransactionFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.txnRepo.ListPendingTransactions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.reportFailure(ctx, "dashboard", err)
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	return &domain.Dashboard{
		Summary:  accounting.Summarize(all),
		Expenses: accounting.ExpenseBreakdown(all),
		Pending:  accounting.PendingInventory(pending),
		Buyers:   accounting.PartyLedger(all, domain.RoleBuyer),
		Sellers:  accounting.PartyLedger(all, domain.RoleSeller),
	}, nil
}
