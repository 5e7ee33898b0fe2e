package repositories

import (
	"context"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for ledger rows
type TransactionReader interface {
	// FindTransactionByID retrieves a row by id. Returns apperrors.ErrNotFound when absent.
	FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error)

	// ListTransactions returns rows matching the filter, newest id first.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// ListPendingTransactions returns rows with status PENDING, newest id first.
	ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger rows
type TransactionWriter interface {
	// SaveTransaction inserts a new row and returns its assigned id.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error)

	// SaveSaleWithLink inserts a SELL row and flips the linked BUY from PENDING to SOLD
	// in one database transaction. If the purchase is no longer a pending BUY nothing is written.
	SaveSaleWithLink(ctx context.Context, sale domain.Transaction, purchaseID int64) (int64, error)

	// UpdatePayment sets amount_paid and refreshes updated_at.
	UpdatePayment(ctx context.Context, id int64, amountPaid decimal.Decimal) error

	// UpdateStatus sets status and refreshes updated_at.
	UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) error

	// DeleteTransaction hard-deletes a row. Returns apperrors.ErrNotFound when absent.
	DeleteTransaction(ctx context.Context, id int64) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
