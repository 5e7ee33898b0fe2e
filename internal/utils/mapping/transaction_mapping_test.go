package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/core/domain"
	"github.com/SscSPs/mandi_ledger_app/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelTransaction_NullsTheOtherCounterparty(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m := ToModelTransaction(domain.Transaction{
		TransactionType: domain.Buy,
		BuyerName:       "Ram",
		ItemName:        "Wheat",
		Quantity:        decimal.NewFromInt(10),
		Status:          domain.Pending,
		TransactionDate: now,
	})

	require.NotNil(t, m.BuyerName)
	assert.Equal(t, "Ram", *m.BuyerName)
	assert.Nil(t, m.SellerName)
	assert.Nil(t, m.Notes)
	assert.True(t, m.QuantityKg.Equal(decimal.NewFromInt(10)))
}

func TestToDomainTransaction_RejectsUnknownEnums(t *testing.T) {
	_, err := ToDomainTransaction(models.Transaction{ID: 7, TransactionType: "LEND", Status: "PENDING"})
	assert.ErrorContains(t, err, "unknown transaction_type")

	_, err = ToDomainTransaction(models.Transaction{ID: 7, TransactionType: "BUY", Status: "OPEN"})
	assert.ErrorContains(t, err, "unknown status")
}

func TestToDomainTransaction_MapsNullables(t *testing.T) {
	seller := "Mohan"
	linked := int64(3)
	d, err := ToDomainTransaction(models.Transaction{
		ID:               9,
		TransactionType:  "SELL",
		SellerName:       &seller,
		Status:           "COMPLETED",
		LinkedPurchaseID: &linked,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mohan", d.SellerName)
	assert.Empty(t, d.BuyerName)
	assert.Empty(t, d.Notes)
	require.NotNil(t, d.LinkedPurchaseID)
	assert.Equal(t, int64(3), *d.LinkedPurchaseID)
}
