package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/mandi_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/mandi_ledger_app/internal/models"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/mandi_ledger_app/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, transaction_type, buyer_name, seller_name, item_name, quantity_kg, price_per_unit,
	base_amount, mandi_charge, tractor_rent, muddat, cash_discount, labour_charge, transport_charge,
	total_amount, amount_paid, transaction_date, notes, status, party_id, linked_purchase_id,
	created_at, updated_at`

const insertTransactionQuery = `
	INSERT INTO transactions (
		transaction_type, buyer_name, seller_name, item_name, quantity_kg, price_per_unit,
		base_amount, mandi_charge, tractor_rent, muddat, cash_discount, labour_charge, transport_charge,
		total_amount, amount_paid, transaction_date, notes, status, party_id, linked_purchase_id,
		created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	RETURNING id;
`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(base BaseRepository) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: base}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func insertArgs(m models.Transaction) []any {
	return []any{
		m.TransactionType, m.BuyerName, m.SellerName, m.ItemName, m.QuantityKg, m.PricePerUnit,
		m.BaseAmount, m.MandiCharge, m.TractorRent, m.Muddat, m.CashDiscount, m.LabourCharge, m.TransportCharge,
		m.TotalAmount, m.AmountPaid, m.TransactionDate, m.Notes, m.Status, m.PartyID, m.LinkedPurchaseID,
		m.CreatedAt, m.UpdatedAt,
	}
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.ID, &m.TransactionType, &m.BuyerName, &m.SellerName, &m.ItemName, &m.QuantityKg, &m.PricePerUnit,
		&m.BaseAmount, &m.MandiCharge, &m.TractorRent, &m.Muddat, &m.CashDiscount, &m.LabourCharge, &m.TransportCharge,
		&m.TotalAmount, &m.AmountPaid, &m.TransactionDate, &m.Notes, &m.Status, &m.PartyID, &m.LinkedPurchaseID,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// SaveTransaction validates and inserts a row, returning the assigned id.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	if err := txn.Validate(); err != nil {
		return 0, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var id int64
	if err := r.Pool.QueryRow(ctx, insertTransactionQuery, insertArgs(mapping.ToModelTransaction(txn))...).Scan(&id); err != nil {
		return 0, r.storageErr(ctx, "failed to insert transaction", err)
	}
	return id, nil
}

// SaveSaleWithLink inserts the sale and settles the purchase in one database transaction.
func (r *PgxTransactionRepository) SaveSaleWithLink(ctx context.Context, sale domain.Transaction, purchaseID int64) (int64, error) {
	sale.LinkedPurchaseID = &purchaseID
	if err := sale.Validate(); err != nil {
		return 0, err
	}
	if sale.TransactionType != domain.Sell {
		return 0, fmt.Errorf("%w: only a sale can settle a purchase", apperrors.ErrValidation)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE transactions SET status = $1, updated_at = $2
		WHERE id = $3 AND transaction_type = $4 AND status = $5 AND quantity_kg >= $6;
	`, string(domain.Sold), time.Now().UTC(), purchaseID, string(domain.Buy), string(domain.Pending), sale.Quantity)
	if err != nil {
		return 0, r.storageErr(ctx, fmt.Sprintf("failed to settle purchase %d", purchaseID), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, apperrors.NewLinkageError("Linked purchase must be a pending BUY transaction")
	}

	var id int64
	if err := tx.QueryRow(ctx, insertTransactionQuery, insertArgs(mapping.ToModelTransaction(sale))...).Scan(&id); err != nil {
		return 0, r.storageErr(ctx, "failed to insert linked sale", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return id, nil
}

// FindTransactionByID retrieves a single row.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Transaction not found")
		}
		return nil, r.storageErr(ctx, fmt.Sprintf("failed to find transaction %d", id), err)
	}

	txn, err := mapping.ToDomainTransaction(m)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to decode transaction", err)
	}
	return &txn, nil
}

// ListTransactions returns rows matching the filter, newest id first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Type != nil {
		conds = append(conds, "transaction_type = "+arg(string(*filter.Type)))
	}
	if filter.Status != nil {
		conds = append(conds, "status = "+arg(string(*filter.Status)))
	}
	if filter.ItemSearch != "" {
		conds = append(conds, "item_name ILIKE '%' || "+arg(database.EscapeLike(filter.ItemSearch))+` || '%' ESCAPE '\'`)
	}
	if filter.Counterparty != "" {
		p := arg(filter.Counterparty)
		conds = append(conds, "(buyer_name = "+p+" OR seller_name = "+p+")")
	}
	if filter.BeforeID > 0 {
		conds = append(conds, "id < "+arg(filter.BeforeID))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	return r.queryTransactions(ctx, "failed to list transactions", query, args...)
}

// ListPendingTransactions returns purchases awaiting settlement, newest first.
func (r *PgxTransactionRepository) ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE status = $1 ORDER BY id DESC;`
	return r.queryTransactions(ctx, "failed to list pending transactions", query, string(domain.Pending))
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, errMsg, query string, args ...any) ([]domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, r.storageErr(ctx, errMsg, err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, r.storageErr(ctx, "failed to scan transaction row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, r.storageErr(ctx, "error iterating transaction rows", err)
	}

	txns, err := mapping.ToDomainTransactionSlice(ms)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to decode transactions", err)
	}
	return txns, nil
}

// UpdatePayment sets amount_paid and refreshes updated_at.
func (r *PgxTransactionRepository) UpdatePayment(ctx context.Context, id int64, amountPaid decimal.Decimal) error {
	if amountPaid.IsNegative() {
		return fmt.Errorf("%w: amount paid cannot be negative", apperrors.ErrValidation)
	}
	return r.updateOne(ctx, fmt.Sprintf("failed to update payment for transaction %d", id),
		`UPDATE transactions SET amount_paid = $1, updated_at = $2 WHERE id = $3;`,
		amountPaid, time.Now().UTC(), id)
}

// UpdateStatus sets status and refreshes updated_at.
func (r *PgxTransactionRepository) UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) error {
	switch status {
	case domain.Pending, domain.Sold, domain.Completed:
	default:
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	return r.updateOne(ctx, fmt.Sprintf("failed to update status for transaction %d", id),
		`UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3;`,
		string(status), time.Now().UTC(), id)
}

// DeleteTransaction hard-deletes a row. Sales linked to it keep their row with a NULL link.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, id int64) error {
	return r.updateOne(ctx, fmt.Sprintf("failed to delete transaction %d", id),
		`DELETE FROM transactions WHERE id = $1;`, id)
}

func (r *PgxTransactionRepository) updateOne(ctx context.Context, errMsg, query string, args ...any) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return r.storageErr(ctx, errMsg, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Transaction not found")
	}
	return nil
}
