package dto

import (
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPurchaseRequest carries the raw fields of a BUY.
// Numeric fields are pointers so a missing value is reported as empty rather than zero.
type RecordPurchaseRequest struct {
	BuyerName    string           `json:"buyerName"`
	ItemName     string           `json:"itemName"`
	Quantity     *decimal.Decimal `json:"quantity"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit"`
	AmountPaid   *decimal.Decimal `json:"amountPaid"` // Optional, defaults to 0
	Notes        string           `json:"notes"`
	PartyID      *int64           `json:"partyID"` // Optional directory entry
}

// RecordSaleRequest carries the raw fields of a SELL.
type RecordSaleRequest struct {
	SellerName       string           `json:"sellerName"`
	ItemName         string           `json:"itemName"`
	Quantity         *decimal.Decimal `json:"quantity"`
	PricePerUnit     *decimal.Decimal `json:"pricePerUnit"`
	AmountPaid       *decimal.Decimal `json:"amountPaid"`
	Notes            string           `json:"notes"`
	PartyID          *int64           `json:"partyID"`
	LinkedPurchaseID *int64           `json:"linkedPurchaseID"` // Optional BUY this sale settles
}

// UpdatePaymentRequest sets a new cumulative amount paid.
type UpdatePaymentRequest struct {
	AmountPaid *decimal.Decimal `json:"amountPaid"`
}

// RecordTransactionResponse returns the id assigned to a new row.
type RecordTransactionResponse struct {
	ID int64 `json:"id"`
}

// TransactionResponse defines the data returned for a ledger row.
// Mirrors domain.Transaction.
type TransactionResponse struct {
	ID               int64                    `json:"id"`
	TransactionType  domain.TransactionType   `json:"transactionType"`
	BuyerName        string                   `json:"buyerName,omitempty"`
	SellerName       string                   `json:"sellerName,omitempty"`
	ItemName         string                   `json:"itemName"`
	Quantity         decimal.Decimal          `json:"quantity"`
	PricePerUnit     decimal.Decimal          `json:"pricePerUnit"`
	BaseAmount       decimal.Decimal          `json:"baseAmount"`
	MandiCharge      decimal.Decimal          `json:"mandiCharge"`
	TractorRent      decimal.Decimal          `json:"tractorRent"`
	Muddat           decimal.Decimal          `json:"muddat"`
	CashDiscount     decimal.Decimal          `json:"cashDiscount"`
	LabourCharge     decimal.Decimal          `json:"labourCharge"`
	TransportCharge  decimal.Decimal          `json:"transportCharge"`
	TotalAmount      decimal.Decimal          `json:"totalAmount"`
	AmountPaid       decimal.Decimal          `json:"amountPaid"`
	Balance          decimal.Decimal          `json:"balance"` // base amount minus amount paid
	TransactionDate  time.Time                `json:"transactionDate"`
	Notes            string                   `json:"notes,omitempty"`
	Status           domain.TransactionStatus `json:"status"`
	PartyID          *int64                   `json:"partyID,omitempty"`
	LinkedPurchaseID *int64                   `json:"linkedPurchaseID,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID,
		TransactionType:  t.TransactionType,
		BuyerName:        t.BuyerName,
		SellerName:       t.SellerName,
		ItemName:         t.ItemName,
		Quantity:         t.Quantity,
		PricePerUnit:     t.PricePerUnit,
		BaseAmount:       t.BaseAmount,
		MandiCharge:      t.MandiCharge,
		TractorRent:      t.TractorRent,
		Muddat:           t.Muddat,
		CashDiscount:     t.CashDiscount,
		LabourCharge:     t.LabourCharge,
		TransportCharge:  t.TransportCharge,
		TotalAmount:      t.TotalAmount,
		AmountPaid:       t.AmountPaid,
		Balance:          t.BaseAmount.Sub(t.AmountPaid),
		TransactionDate:  t.TransactionDate,
		Notes:            t.Notes,
		Status:           t.Status,
		PartyID:          t.PartyID,
		LinkedPurchaseID: t.LinkedPurchaseID,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to response DTOs
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing ledger rows.
type ListTransactionsParams struct {
	Type      string `form:"type" binding:"omitempty,oneof=BUY SELL"`
	Status    string `form:"status" binding:"omitempty,oneof=PENDING SOLD COMPLETED"`
	Item      string `form:"item"`  // case-insensitive substring
	Party     string `form:"party"` // exact counterparty name
	Limit     int    `form:"limit,default=50" binding:"min=0,max=500"`
	NextToken string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of ledger rows.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
