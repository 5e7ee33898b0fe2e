package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/mandi_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/platform/config"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/accounting"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/validation"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	validator := validation.NewValidator(cfg.Limits)
	calculator := accounting.NewCalculator(cfg.Rates, logger)

	container := &portssvc.ServiceContainer{}

	container.Party = NewPartyService(repos.PartyRepo, validator, logger)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		validator,
		calculator,
		WithPartyDirectory(repos.PartyRepo),
		WithTransactionLogger(logger),
	)

	container.Ledger = NewLedgerService(repos.TransactionRepo, WithLedgerLogger(logger))

	return container
}
