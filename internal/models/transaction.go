package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the storage shape of a ledger row. Columns that are
// NULL for one of the two types are pointers.
type Transaction struct {
	ID               int64           `db:"id"`
	TransactionType  string          `db:"transaction_type"`
	BuyerName        *string         `db:"buyer_name"`
	SellerName       *string         `db:"seller_name"`
	ItemName         string          `db:"item_name"`
	QuantityKg       decimal.Decimal `db:"quantity_kg"` // quintals; column name kept for data portability
	PricePerUnit     decimal.Decimal `db:"price_per_unit"`
	BaseAmount       decimal.Decimal `db:"base_amount"`
	MandiCharge      decimal.Decimal `db:"mandi_charge"`
	TractorRent      decimal.Decimal `db:"tractor_rent"`
	Muddat           decimal.Decimal `db:"muddat"`
	CashDiscount     decimal.Decimal `db:"cash_discount"`
	LabourCharge     decimal.Decimal `db:"labour_charge"`
	TransportCharge  decimal.Decimal `db:"transport_charge"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	AmountPaid       decimal.Decimal `db:"amount_paid"`
	TransactionDate  time.Time       `db:"transaction_date"`
	Notes            *string         `db:"notes"`
	Status           string          `db:"status"`
	PartyID          *int64          `db:"party_id"`
	LinkedPurchaseID *int64          `db:"linked_purchase_id"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}
