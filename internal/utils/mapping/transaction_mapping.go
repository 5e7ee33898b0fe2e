package mapping

import (
	"fmt"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	"github.com/SscSPs/mandi_ledger_app/internal/models"
)

// ToModelTransaction converts a domain.Transaction to its storage shape.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		ID:               d.ID,
		TransactionType:  string(d.TransactionType),
		BuyerName:        nullIfEmpty(d.BuyerName),
		SellerName:       nullIfEmpty(d.SellerName),
		ItemName:         d.ItemName,
		QuantityKg:       d.Quantity,
		PricePerUnit:     d.PricePerUnit,
		BaseAmount:       d.BaseAmount,
		MandiCharge:      d.MandiCharge,
		TractorRent:      d.TractorRent,
		Muddat:           d.Muddat,
		CashDiscount:     d.CashDiscount,
		LabourCharge:     d.LabourCharge,
		TransportCharge:  d.TransportCharge,
		TotalAmount:      d.TotalAmount,
		AmountPaid:       d.AmountPaid,
		TransactionDate:  d.TransactionDate,
		Notes:            nullIfEmpty(d.Notes),
		Status:           string(d.Status),
		PartyID:          d.PartyID,
		LinkedPurchaseID: d.LinkedPurchaseID,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// ToDomainTransaction converts a stored row back to a domain.Transaction.
// It fails on enum values the domain does not know.
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	txnType := domain.TransactionType(m.TransactionType)
	if txnType != domain.Buy && txnType != domain.Sell {
		return domain.Transaction{}, fmt.Errorf("row %d: unknown transaction_type %q", m.ID, m.TransactionType)
	}
	status := domain.TransactionStatus(m.Status)
	switch status {
	case domain.Pending, domain.Sold, domain.Completed:
	default:
		return domain.Transaction{}, fmt.Errorf("row %d: unknown status %q", m.ID, m.Status)
	}

	return domain.Transaction{
		ID:               m.ID,
		TransactionType:  txnType,
		BuyerName:        emptyIfNull(m.BuyerName),
		SellerName:       emptyIfNull(m.SellerName),
		ItemName:         m.ItemName,
		Quantity:         m.QuantityKg,
		PricePerUnit:     m.PricePerUnit,
		BaseAmount:       m.BaseAmount,
		MandiCharge:      m.MandiCharge,
		TractorRent:      m.TractorRent,
		Muddat:           m.Muddat,
		CashDiscount:     m.CashDiscount,
		LabourCharge:     m.LabourCharge,
		TransportCharge:  m.TransportCharge,
		TotalAmount:      m.TotalAmount,
		AmountPaid:       m.AmountPaid,
		TransactionDate:  m.TransactionDate,
		Notes:            emptyIfNull(m.Notes),
		Status:           status,
		PartyID:          m.PartyID,
		LinkedPurchaseID: m.LinkedPurchaseID,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}, nil
}

// ToDomainTransactionSlice converts stored rows, stopping at the first bad row.
func ToDomainTransactionSlice(ms []models.Transaction) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainTransaction(m)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func emptyIfNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
