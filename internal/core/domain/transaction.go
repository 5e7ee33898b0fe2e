package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType tells whether a row records a purchase or a sale.
type TransactionType string

const (
	Buy  TransactionType = "BUY"
	Sell TransactionType = "SELL"
)

// TransactionStatus is the settlement state of a row.
// BUY rows start Pending and become Sold when a sale settles them.
// SELL rows are always Completed.
type TransactionStatus string

const (
	Pending   TransactionStatus = "PENDING"
	Sold      TransactionStatus = "SOLD"
	Completed TransactionStatus = "COMPLETED"
)

// StoragePlaces is the scale of every decimal column. Writes finer than this are
// rejected rather than rounded by the database.
const StoragePlaces int32 = 4

// Transaction is the single persisted ledger entity.
// Quantity is in quintals (100 kg) even though the storage column is named quantity_kg.
type Transaction struct {
	ID               int64             `json:"id"`
	TransactionType  TransactionType   `json:"transactionType" validate:"required,oneof=BUY SELL"`
	BuyerName        string            `json:"buyerName,omitempty" validate:"required_if=TransactionType BUY,excluded_if=TransactionType SELL,max=100"`
	SellerName       string            `json:"sellerName,omitempty" validate:"required_if=TransactionType SELL,excluded_if=TransactionType BUY,max=100"`
	ItemName         string            `json:"itemName" validate:"required,max=100"`
	Quantity         decimal.Decimal   `json:"quantity" validate:"gt=0"`
	PricePerUnit     decimal.Decimal   `json:"pricePerUnit" validate:"gt=0"`
	BaseAmount       decimal.Decimal   `json:"baseAmount" validate:"gte=0"`
	MandiCharge      decimal.Decimal   `json:"mandiCharge" validate:"gte=0"`
	TractorRent      decimal.Decimal   `json:"tractorRent" validate:"gte=0"`
	Muddat           decimal.Decimal   `json:"muddat" validate:"gte=0"`
	CashDiscount     decimal.Decimal   `json:"cashDiscount" validate:"gte=0"`
	LabourCharge     decimal.Decimal   `json:"labourCharge" validate:"gte=0"`
	TransportCharge  decimal.Decimal   `json:"transportCharge" validate:"gte=0"`
	TotalAmount      decimal.Decimal   `json:"totalAmount" validate:"gte=0"`
	AmountPaid       decimal.Decimal   `json:"amountPaid" validate:"gte=0"`
	TransactionDate  time.Time         `json:"transactionDate" validate:"required"`
	Notes            string            `json:"notes,omitempty" validate:"max=500"`
	Status           TransactionStatus `json:"status" validate:"required,oneof=PENDING SOLD COMPLETED"`
	PartyID          *int64            `json:"partyID,omitempty"`
	LinkedPurchaseID *int64            `json:"linkedPurchaseID,omitempty"`
	AuditFields
}

// IsBuy reports whether the row is a purchase.
func (t *Transaction) IsBuy() bool {
	return t.TransactionType == Buy
}

// Counterparty returns the buyer name for purchases and the seller name for sales.
func (t *Transaction) Counterparty() string {
	if t.IsBuy() {
		return t.BuyerName
	}
	return t.SellerName
}

// Expenses is the trader's own cost on the row: buy-side surcharges for a
// purchase, sell-side deductions for a sale.
func (t *Transaction) Expenses() decimal.Decimal {
	if t.IsBuy() {
		return t.MandiCharge.Add(t.TractorRent).Add(t.Muddat)
	}
	return t.CashDiscount.Add(t.LabourCharge).Add(t.TransportCharge)
}

// SettlementCap is the ceiling for amount_paid on payment updates.
// Counterparty balances are tracked on price x quantity, so that is the cap;
// total_amount is only used when the base cannot be derived.
func (t *Transaction) SettlementCap() decimal.Decimal {
	base := t.PricePerUnit.Mul(t.Quantity)
	if base.IsPositive() {
		return base
	}
	return t.TotalAmount
}

// Validate enforces the row-level constraints every write must satisfy.
func (t *Transaction) Validate() error {
	if err := structValidator.Struct(t); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, describeValidationError(err))
	}

	if err := t.checkScale(); err != nil {
		return err
	}

	switch t.TransactionType {
	case Buy:
		if !t.CashDiscount.IsZero() || !t.LabourCharge.IsZero() || !t.TransportCharge.IsZero() {
			return fmt.Errorf("%w: sell deductions must be zero on a purchase", apperrors.ErrValidation)
		}
		if t.Status != Pending && t.Status != Sold {
			return fmt.Errorf("%w: purchase status must be PENDING or SOLD, got %s", apperrors.ErrValidation, t.Status)
		}
		if t.LinkedPurchaseID != nil {
			return fmt.Errorf("%w: a purchase cannot link to another purchase", apperrors.ErrValidation)
		}
	case Sell:
		if !t.MandiCharge.IsZero() || !t.TractorRent.IsZero() || !t.Muddat.IsZero() {
			return fmt.Errorf("%w: buy charges must be zero on a sale", apperrors.ErrValidation)
		}
		if t.Status != Completed {
			return fmt.Errorf("%w: sale status must be COMPLETED, got %s", apperrors.ErrValidation, t.Status)
		}
	}
	return nil
}

func (t *Transaction) checkScale() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"Quantity", t.Quantity},
		{"PricePerUnit", t.PricePerUnit},
		{"BaseAmount", t.BaseAmount},
		{"MandiCharge", t.MandiCharge},
		{"TractorRent", t.TractorRent},
		{"Muddat", t.Muddat},
		{"CashDiscount", t.CashDiscount},
		{"LabourCharge", t.LabourCharge},
		{"TransportCharge", t.TransportCharge},
		{"TotalAmount", t.TotalAmount},
		{"AmountPaid", t.AmountPaid},
	}
	for _, f := range fields {
		if !f.value.Equal(f.value.Truncate(StoragePlaces)) {
			return fmt.Errorf("%w: %s %s has more than %d decimal places", apperrors.ErrValidation, f.name, f.value.String(), StoragePlaces)
		}
	}
	return nil
}

// TransactionFilter narrows ListTransactions. Zero values mean "no filter".
type TransactionFilter struct {
	Type         *TransactionType
	Status       *TransactionStatus
	ItemSearch   string // case-insensitive substring of item_name
	Counterparty string // exact buyer or seller name
	Limit        int    // 0 means unlimited
	BeforeID     int64  // id cursor: only rows with id < BeforeID
}
