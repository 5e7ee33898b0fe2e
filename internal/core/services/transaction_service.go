package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mandi_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/dto"
	"github.com/SscSPs/mandi_ledger_app/internal/metrics"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/accounting"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/pagination"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/validation"
	"github.com/shopspring/decimal"
)

// transactionService is the ledger engine: it validates, prices, links and persists rows.
type transactionService struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryFacade
	partyRepo  portsrepo.PartyReader
	validator  *validation.Validator
	calculator *accounting.Calculator
	now        func() time.Time
}

// TransactionServiceOption configures optional dependencies.
type TransactionServiceOption func(*transactionService)

// WithPartyDirectory enables party_id checks against the directory.
func WithPartyDirectory(repo portsrepo.PartyReader) TransactionServiceOption {
	return func(s *transactionService) {
		s.partyRepo = repo
	}
}

// WithClock overrides the time source used for transaction dates.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// WithTransactionLogger sets the logger used outside request scope.
func WithTransactionLogger(logger *slog.Logger) TransactionServiceOption {
	return func(s *transactionService) {
		s.Logger = logger
	}
}

// NewTransactionService creates the ledger engine.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	validator *validation.Validator,
	calculator *accounting.Calculator,
	opts ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	s := &transactionService{
		txnRepo:    txnRepo,
		validator:  validator,
		calculator: calculator,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// tradeInput is the validated and sanitized common part of a purchase or sale.
type tradeInput struct {
	counterparty string
	item         string
	quantity     decimal.Decimal
	price        decimal.Decimal
	amountPaid   decimal.Decimal
	notes        string
}

func (s *transactionService) validateTrade(counterparty, counterpartyLabel, item string, quantity, price, amountPaid *decimal.Decimal, notes string) (tradeInput, error) {
	if err := s.validator.ValidateName(counterparty, counterpartyLabel); err != nil {
		return tradeInput{}, err
	}
	if err := s.validator.ValidateItemName(item); err != nil {
		return tradeInput{}, err
	}
	if err := s.validator.ValidateQuantity(quantity); err != nil {
		return tradeInput{}, err
	}
	if err := s.validator.ValidatePrice(price); err != nil {
		return tradeInput{}, err
	}
	paid := decimal.Zero
	if amountPaid != nil {
		if err := s.validator.ValidateAmount(*amountPaid, "Amount Paid"); err != nil {
			return tradeInput{}, err
		}
		paid = *amountPaid
	}
	if err := s.validator.ValidateNotes(notes); err != nil {
		return tradeInput{}, err
	}

	return tradeInput{
		counterparty: validation.SanitizeString(counterparty),
		item:         validation.SanitizeString(item),
		quantity:     *quantity,
		price:        *price,
		amountPaid:   paid,
		notes:        validation.SanitizeString(notes),
	}, nil
}

// checkParty confirms an optional directory entry exists and may take the role.
func (s *transactionService) checkParty(ctx context.Context, partyID *int64, txnType domain.TransactionType) error {
	if partyID == nil || s.partyRepo == nil {
		return nil
	}
	party, err := s.partyRepo.FindPartyByID(ctx, *partyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("Selected party does not exist")
		}
		return err
	}
	if !party.Accepts(txnType) {
		return apperrors.NewValidationError(fmt.Sprintf("Party %s cannot be used on a %s transaction", party.Name, txnType))
	}
	return nil
}

// RecordPurchase validates, prices and persists a BUY with status PENDING.
func (s *transactionService) RecordPurchase(ctx context.Context, req dto.RecordPurchaseRequest) (int64, error) {
	const op = "record_purchase"

	in, err := s.validateTrade(req.BuyerName, "Buyer Name", req.ItemName, req.Quantity, req.PricePerUnit, req.AmountPaid, req.Notes)
	if err != nil {
		s.reportFailure(ctx, op, err)
		return 0, err
	}

	base := accounting.BaseAmount(in.price, in.quantity)
	charges, err := s.calculator.CalculateBuyingPrice(base, in.quantity)
	if err != nil {
		s.reportFailure(ctx, op, err)
		return 0, err
	}
	if in.amountPaid.GreaterThan(charges.Total) {
		err := apperrors.NewValidationError("Amount Paid cannot exceed total amount")
		s.reportFailure(ctx, op, err, slog.String("total_amount", charges.Total.String()))
		return 0, err
	}
	if err := s.checkParty(ctx, req.PartyID, domain.Buy); err != nil {
		s.reportFailure(ctx, op, err)
		return 0, err
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionType: domain.Buy,
		BuyerName:       in.counterparty,
		ItemName:        in.item,
		Quantity:        in.quantity,
		PricePerUnit:    in.price,
		BaseAmount:      base,
		MandiCharge:     charges.MandiCharge,
		TractorRent:     charges.TractorRent,
		Muddat:          charges.Muddat,
		TotalAmount:     charges.Total,
		AmountPaid:      in.amountPaid,
		TransactionDate: now,
		Notes:           in.notes,
		Status:          domain.Pending,
		PartyID:         req.PartyID,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	id, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.reportFailure(ctx, op, err, slog.String("buyer_name", in.counterparty))
		return 0, fmt.Errorf("failed to record purchase: %w", err)
	}

	metrics.TransactionsRecorded.WithLabelValues(string(domain.Buy)).Inc()
	s.LogInfo(ctx, "Purchase recorded",
		slog.Int64("transaction_id", id),
		slog.String("item_name", in.item),
		slog.String("total_amount", charges.Total.String()))
	return id, nil
}

// RecordSale validates, prices and persists a SELL with status COMPLETED.
// When a purchase is linked it is flipped to SOLD in the same database transaction.
func (s *transactionService) RecordSale(ctx context.Context, req dto.RecordSaleRequest) (int64, error) {
	const op = "record_sale"

	in, err := s.validateTrade(req.SellerName, "Seller Name", req.ItemName, req.Quantity, req.PricePerUnit, req.AmountPaid, req.Notes)
	if err != nil {
		s.reportFailure(ctx, op, err)
		return 0, err
	}

	base := accounting.BaseAmount(in.price, in.quantity)
	proceeds, err := s.calculator.CalculateSellingPrice(base, in.quantity)
	if err != nil {
		s.reportFailure(ctx, op, err)
		return 0, err
	}
	if in.amountPaid.GreaterThan(proceeds.Total) {
		err := apperrors.NewValidationError("Amount Paid cannot exceed total amount")
		s.reportFailure(ctx, op, err, slog.String("total_amount", proceeds.Total.String()))
		return 0, err
	}
	if err := s.checkParty(ctx, req.PartyID, domain.Sell); err != nil {
		s.reportFailure(ctx, op, err)
		return 0, err
	}

	if req.LinkedPurchaseID != nil {
		if err := s.checkLinkedPurchase(ctx, *req.LinkedPurchaseID, in.quantity); err != nil {
			s.reportFailure(ctx, op, err, slog.Int64("linked_purchase_id", *req.LinkedPurchaseID))
			return 0, err
		}
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionType: domain.Sell,
		SellerName:      in.counterparty,
		ItemName:        in.item,
		Quantity:        in.quantity,
		PricePerUnit:    in.price,
		BaseAmount:      base,
		CashDiscount:    proceeds.CashDiscount,
		LabourCharge:    proceeds.LabourCharge,
		TransportCharge: proceeds.TransportCharge,
		TotalAmount:     proceeds.Total,
		AmountPaid:      in.amountPaid,
		TransactionDate: now,
		Notes:           in.notes,
		Status:          domain.Completed,
		PartyID:         req.PartyID,
		AuditFields:     domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	var id int64
	if req.LinkedPurchaseID != nil {
		id, err = s.txnRepo.SaveSaleWithLink(ctx, txn, *req.LinkedPurchaseID)
	} else {
		id, err = s.txnRepo.SaveTransaction(ctx, txn)
	}
	if err != nil {
		s.reportFailure(ctx, op, err, slog.String("seller_name", in.counterparty))
		if errors.Is(err, apperrors.ErrLinkage) || errors.Is(err, apperrors.ErrValidation) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to record sale: %w", err)
	}

	metrics.TransactionsRecorded.WithLabelValues(string(domain.Sell)).Inc()
	if req.LinkedPurchaseID != nil {
		metrics.LinkedSales.Inc()
	}
	s.LogInfo(ctx, "Sale recorded",
		slog.Int64("transaction_id", id),
		slog.String("item_name", in.item),
		slog.String("total_amount", proceeds.Total.String()),
		slog.Bool("clamped", proceeds.Clamped))
	return id, nil
}

// checkLinkedPurchase enforces that a sale may only settle a whole pending BUY lot.
func (s *transactionService) checkLinkedPurchase(ctx context.Context, purchaseID int64, saleQty decimal.Decimal) error {
	purchase, err := s.txnRepo.FindTransactionByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewLinkageError("Linked purchase not found")
		}
		return err
	}
	if purchase.TransactionType != domain.Buy || purchase.Status != domain.Pending {
		return apperrors.NewLinkageError("Linked purchase must be a pending BUY transaction")
	}
	if saleQty.GreaterThan(purchase.Quantity) {
		return apperrors.NewLinkageError("Selling quantity cannot exceed linked purchase quantity")
	}
	return nil
}

// UpdatePayment replaces amount_paid. The ceiling is the base amount (price x quantity),
// matching how counterparty ledgers are computed.
func (s *transactionService) UpdatePayment(ctx context.Context, id int64, amountPaid *decimal.Decimal) error {
	const op = "update_payment"

	if err := s.validator.ValidateAmount(amountPaid, "Amount Paid"); err != nil {
		s.reportFailure(ctx, op, err, slog.Int64("transaction_id", id))
		return err
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, id)
	if err != nil {
		s.reportFailure(ctx, op, err, slog.Int64("transaction_id", id))
		return err
	}

	limit := txn.SettlementCap()
	if amountPaid.GreaterThan(limit) {
		err := apperrors.NewValidationError(fmt.Sprintf("Amount Paid cannot exceed base amount of %s", limit.StringFixed(2)))
		s.reportFailure(ctx, op, err, slog.Int64("transaction_id", id))
		return err
	}

	if err := s.txnRepo.UpdatePayment(ctx, id, *amountPaid); err != nil {
		s.reportFailure(ctx, op, err, slog.Int64("transaction_id", id))
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update payment: %w", err)
	}

	s.LogInfo(ctx, "Payment updated", slog.Int64("transaction_id", id), slog.String("amount_paid", amountPaid.String()))
	return nil
}

// DeleteTransaction hard-deletes a row without checking sales that link to it.
func (s *transactionService) DeleteTransaction(ctx context.Context, id int64) error {
	const op = "delete_transaction"

	if err := s.txnRepo.DeleteTransaction(ctx, id); err != nil {
		s.reportFailure(ctx, op, err, slog.Int64("transaction_id", id))
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", id))
	return nil
}

// GetTransaction retrieves a single row.
func (s *transactionService) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.reportFailure(ctx, "get_transaction", err, slog.Int64("transaction_id", id))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns a filtered page, newest first, with a cursor for the next page.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter := domain.TransactionFilter{
		ItemSearch:   validation.NormalizeText(params.Item),
		Counterparty: validation.NormalizeText(params.Party),
	}
	if params.Type != "" {
		t := domain.TransactionType(params.Type)
		filter.Type = &t
	}
	if params.Status != "" {
		st := domain.TransactionStatus(params.Status)
		filter.Status = &st
	}
	if params.NextToken != "" {
		beforeID, err := pagination.DecodeIDToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.BeforeID = beforeID
	}
	if params.Limit > 0 {
		// Fetch one extra row to learn whether another page exists.
		filter.Limit = params.Limit + 1
	}

	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.reportFailure(ctx, "list_transactions", err)
		return nil, err
	}

	resp := &dto.ListTransactionsResponse{}
	if params.Limit > 0 && len(txns) > params.Limit {
		txns = txns[:params.Limit]
		next := pagination.EncodeIDToken(txns[len(txns)-1].ID)
		resp.NextToken = &next
	}
	resp.Transactions = dto.ToListTransactionResponse(txns)
	return resp, nil
}

// ListPending returns purchases still awaiting a settling sale.
func (s *transactionService) ListPending(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListPendingTransactions(ctx)
	if err != nil {
		s.reportFailure(ctx, "list_pending", err)
		return nil, err
	}
	return txns, nil
}
