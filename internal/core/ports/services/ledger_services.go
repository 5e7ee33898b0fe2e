package services

import (
	"context"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
)

// LedgerSvc defines the reporting views derived from the ledger
type LedgerSvc interface {
	Summary(ctx context.Context) (*domain.Summary, error)
	// PartyLedger aggregates base amounts per counterparty for the given role.
	PartyLedger(ctx context.Context, role domain.PartyRole) ([]domain.PartyBalance, error)
	Expenses(ctx context.Context) (*domain.ExpenseBreakdown, error)
	PendingInventory(ctx context.Context) (*domain.PendingInventory, error)
	// Dashboard computes every view in one call.
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}
