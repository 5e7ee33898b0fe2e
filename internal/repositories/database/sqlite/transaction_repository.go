package sqlite

import (
	"context"
	"database/sql"
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
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type SQLiteTransactionRepository struct {
	BaseRepository
}

func newSQLiteTransactionRepository(base BaseRepository) *SQLiteTransactionRepository {
	return &SQLiteTransactionRepository{BaseRepository: base}
}

// Ensure SQLiteTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*SQLiteTransactionRepository)(nil)

func (r *SQLiteTransactionRepository) insert(ctx context.Context, db execer, txn domain.Transaction) (int64, error) {
	now := time.Now().UTC()
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = now
	}
	if txn.UpdatedAt.IsZero() {
		txn.UpdatedAt = txn.CreatedAt
	}
	m := mapping.ToModelTransaction(txn)

	res, err := db.ExecContext(ctx, insertTransactionQuery,
		m.TransactionType, m.BuyerName, m.SellerName, m.ItemName, m.QuantityKg, m.PricePerUnit,
		m.BaseAmount, m.MandiCharge, m.TractorRent, m.Muddat, m.CashDiscount, m.LabourCharge, m.TransportCharge,
		m.TotalAmount, m.AmountPaid, formatTime(m.TransactionDate), m.Notes, m.Status, m.PartyID, m.LinkedPurchaseID,
		formatTime(m.CreatedAt), formatTime(m.UpdatedAt),
	)
	if err != nil {
		return 0, r.storageErr(ctx, "failed to insert transaction", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, r.storageErr(ctx, "failed to read inserted transaction id", err)
	}
	return id, nil
}

// SaveTransaction validates and inserts a row, returning the assigned id.
func (r *SQLiteTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	if err := txn.Validate(); err != nil {
		return 0, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.insert(ctx, r.DB, txn)
}

// SaveSaleWithLink inserts the sale and settles the purchase in one database transaction.
func (r *SQLiteTransactionRepository) SaveSaleWithLink(ctx context.Context, sale domain.Transaction, purchaseID int64) (int64, error) {
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

	res, err := tx.ExecContext(ctx, `
		UPDATE transactions SET status = ?, updated_at = ?
		WHERE id = ? AND transaction_type = ? AND status = ? AND CAST(quantity_kg AS REAL) >= ?;
	`, string(domain.Sold), formatTime(time.Now()), purchaseID, string(domain.Buy), string(domain.Pending), sale.Quantity.InexactFloat64())
	if err != nil {
		return 0, r.storageErr(ctx, fmt.Sprintf("failed to settle purchase %d", purchaseID), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.storageErr(ctx, "failed to read affected rows", err)
	}
	if n == 0 {
		return 0, apperrors.NewLinkageError("Linked purchase must be a pending BUY transaction")
	}

	id, err := r.insert(ctx, tx, sale)
	if err != nil {
		return 0, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		m                             models.Transaction
		txnDate, createdAt, updatedAt string
	)
	err := row.Scan(
		&m.ID, &m.TransactionType, &m.BuyerName, &m.SellerName, &m.ItemName, &m.QuantityKg, &m.PricePerUnit,
		&m.BaseAmount, &m.MandiCharge, &m.TractorRent, &m.Muddat, &m.CashDiscount, &m.LabourCharge, &m.TransportCharge,
		&m.TotalAmount, &m.AmountPaid, &txnDate, &m.Notes, &m.Status, &m.PartyID, &m.LinkedPurchaseID,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return m, err
	}
	if m.TransactionDate, err = parseTime("transaction_date", txnDate); err != nil {
		return m, err
	}
	if m.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return m, err
	}
	if m.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return m, err
	}
	return m, nil
}

// FindTransactionByID retrieves a single row.
func (r *SQLiteTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?;`
	m, err := scanTransaction(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
func (r *SQLiteTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Type != nil {
		conds = append(conds, "transaction_type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.ItemSearch != "" {
		conds = append(conds, `LOWER(item_name) LIKE '%' || LOWER(?) || '%' ESCAPE '\'`)
		args = append(args, database.EscapeLike(filter.ItemSearch))
	}
	if filter.Counterparty != "" {
		conds = append(conds, "(buyer_name = ? OR seller_name = ?)")
		args = append(args, filter.Counterparty, filter.Counterparty)
	}
	if filter.BeforeID > 0 {
		conds = append(conds, "id < ?")
		args = append(args, filter.BeforeID)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	return r.queryTransactions(ctx, "failed to list transactions", query, args...)
}

// ListPendingTransactions returns purchases awaiting settlement, newest first.
func (r *SQLiteTransactionRepository) ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE status = ? ORDER BY id DESC;`
	return r.queryTransactions(ctx, "failed to list pending transactions", query, string(domain.Pending))
}

func (r *SQLiteTransactionRepository) queryTransactions(ctx context.Context, errMsg, query string, args ...any) ([]domain.Transaction, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, query, args...)
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
func (r *SQLiteTransactionRepository) UpdatePayment(ctx context.Context, id int64, amountPaid decimal.Decimal) error {
	if amountPaid.IsNegative() {
		return fmt.Errorf("%w: amount paid cannot be negative", apperrors.ErrValidation)
	}
	return r.updateOne(ctx, fmt.Sprintf("failed to update payment for transaction %d", id),
		`UPDATE transactions SET amount_paid = ?, updated_at = ? WHERE id = ?;`,
		amountPaid, formatTime(time.Now()), id)
}

// UpdateStatus sets status and refreshes updated_at.
func (r *SQLiteTransactionRepository) UpdateStatus(ctx context.Context, id int64, status domain.TransactionStatus) error {
	switch status {
	case domain.Pending, domain.Sold, domain.Completed:
	default:
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	return r.updateOne(ctx, fmt.Sprintf("failed to update status for transaction %d", id),
		`UPDATE transactions SET status = ?, updated_at = ? WHERE id = ?;`,
		string(status), formatTime(time.Now()), id)
}

// DeleteTransaction hard-deletes a row. Sales linked to it keep their row with a NULL link.
func (r *SQLiteTransactionRepository) DeleteTransaction(ctx context.Context, id int64) error {
	return r.updateOne(ctx, fmt.Sprintf("failed to delete transaction %d", id),
		`DELETE FROM transactions WHERE id = ?;`, id)
}

func (r *SQLiteTransactionRepository) updateOne(ctx context.Context, errMsg, query string, args ...any) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return r.storageErr(ctx, errMsg, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r.storageErr(ctx, errMsg, err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError("Transaction not found")
	}
	return nil
}
