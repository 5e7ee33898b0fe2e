package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/mandi_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/mandi_ledger_app/internal/core/services"
	"github.com/SscSPs/mandi_ledger_app/internal/dto"
	"github.com/SscSPs/mandi_ledger_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/accounting"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/validation"
	"github.com/SscSPs/mandi_ledger_app/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteBackedService(t *testing.T) portssvc.TransactionSvcFacade {
	t.Helper()

	db, err := database.NewSQLiteDB(context.Background(), ":memory:", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseSQLiteDB(db) })
	require.NoError(t, database.RunMigrations(database.DriverSQLite, db))

	repos := sqlite.NewRepositoryProvider(db, 2*time.Second)
	return services.NewTransactionService(
		repos.TransactionRepo,
		validation.NewValidator(validation.DefaultLimits()),
		accounting.NewCalculator(accounting.DefaultRates(), nil),
		services.WithClock(func() time.Time { return fixedNow }),
	)
}

func TestRecordPurchase_FractionalValuesRoundTripExactly(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteBackedService(t)

	tests := []struct {
		name                string
		qty, price, tractor string
		base, mandi, total  string
	}{
		{name: "small lot", qty: "1.5", price: "12.34", base: "18.51", mandi: "0.28", tractor: "22.5", total: "41.57"},
		{name: "large lot", qty: "1234.56", price: "987654.32", base: "1219318517.2992", mandi: "18289777.76", tractor: "18518.4", total: "1255916591.2192"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.RecordPurchase(ctx, dto.RecordPurchaseRequest{
				BuyerName:    "Ram Lal",
				ItemName:     "Mustard",
				Quantity:     dec(tt.qty),
				PricePerUnit: dec(tt.price),
			})
			require.NoError(t, err)

			got, err := svc.GetTransaction(ctx, id)
			require.NoError(t, err)
			assert.True(t, got.Quantity.Equal(*dec(tt.qty)), "quantity %s", got.Quantity)
			assert.True(t, got.PricePerUnit.Equal(*dec(tt.price)), "price %s", got.PricePerUnit)
			assert.True(t, got.BaseAmount.Equal(*dec(tt.base)), "base %s", got.BaseAmount)
			assert.True(t, got.MandiCharge.Equal(*dec(tt.mandi)), "mandi %s", got.MandiCharge)
			assert.True(t, got.Muddat.Equal(*dec(tt.mandi)), "muddat %s", got.Muddat)
			assert.True(t, got.TractorRent.Equal(*dec(tt.tractor)), "tractor %s", got.TractorRent)
			assert.True(t, got.TotalAmount.Equal(*dec(tt.total)), "total %s", got.TotalAmount)
			assert.True(t, got.TotalAmount.Equal(got.BaseAmount.Add(got.Expenses())))
			assert.True(t, got.SettlementCap().Equal(got.BaseAmount))
		})
	}
}

func TestRecordPurchase_RejectsFinerThanTwoPlaces(t *testing.T) {
	ctx := context.Background()
	svc := newSQLiteBackedService(t)

	_, err := svc.RecordPurchase(ctx, dto.RecordPurchaseRequest{
		BuyerName:    "Ram Lal",
		ItemName:     "Mustard",
		Quantity:     dec("1234.5678"),
		PricePerUnit: dec("987654.32"),
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, "Quantity cannot have more than 2 decimal places", err.Error())

	list, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
