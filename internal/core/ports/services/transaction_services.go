package services

import (
	"context"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	"github.com/SscSPs/mandi_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionReaderSvc defines read operations for ledger rows
type TransactionReaderSvc interface {
	// GetTransaction retrieves a single row by id.
	GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered page of rows, newest first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListPending retrieves purchases still awaiting a settling sale.
	ListPending(ctx context.Context) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines the ledger mutations
type TransactionWriterSvc interface {
	// RecordPurchase validates, prices and persists a BUY. Returns the new id.
	RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest) (int64, error)

	// RecordSale validates, prices and persists a SELL, settling the linked BUY if one is given.
	RecordSale(ctx context.Context, req dto.RecordSaleRequest) (int64, error)

	// UpdatePayment replaces amount_paid on an existing row.
	UpdatePayment(ctx context.Context, id int64, amountPaid *decimal.Decimal) error

	// DeleteTransaction hard-deletes a row.
	DeleteTransaction(ctx context.Context, id int64) error
}

// TransactionSvcFacade combines all ledger service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
