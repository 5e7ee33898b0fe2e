package accounting

import (
	"testing"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateBuyingPrice_Wheat(t *testing.T) {
	calc := NewCalculator(DefaultRates(), nil)

	base := BaseAmount(d("1000"), d("10"))
	require.True(t, base.Equal(d("10000")))

	got, err := calc.CalculateBuyingPrice(base, d("10"))
	require.NoError(t, err)
	assert.True(t, got.MandiCharge.Equal(d("150")), "mandi %s", got.MandiCharge)
	assert.True(t, got.TractorRent.Equal(d("150")), "tractor %s", got.TractorRent)
	assert.True(t, got.Muddat.Equal(d("150")), "muddat %s", got.Muddat)
	assert.True(t, got.Total.Equal(d("10450")), "total %s", got.Total)
}

func TestCalculateSellingPrice_Wheat(t *testing.T) {
	calc := NewCalculator(DefaultRates(), nil)

	got, err := calc.CalculateSellingPrice(BaseAmount(d("1200"), d("10")), d("10"))
	require.NoError(t, err)
	assert.True(t, got.CashDiscount.Equal(d("480")))
	assert.True(t, got.LabourCharge.Equal(d("600")))
	assert.True(t, got.TransportCharge.Equal(d("2800")))
	assert.True(t, got.Total.Equal(d("8120")), "total %s", got.Total)
	assert.False(t, got.Clamped)
}

func TestCalculatePrices_FormulaGrid(t *testing.T) {
	calc := NewCalculator(DefaultRates(), nil)

	cases := []struct{ price, weight string }{
		{"0.01", "0.01"},
		{"1", "1"},
		{"2345.67", "12.5"},
		{"1000000", "10000"},
	}
	for _, tc := range cases {
		price, weight := d(tc.price), d(tc.weight)

		buy, err := calc.CalculateBuyingPrice(price, weight)
		require.NoError(t, err)
		pct := price.Mul(d("0.015")).Round(2)
		wantBuy := price.Add(pct).Add(pct).Add(weight.Mul(d("15")))
		assert.True(t, buy.Total.Equal(wantBuy), "buy %s/%s: %s != %s", tc.price, tc.weight, buy.Total, wantBuy)

		sell, err := calc.CalculateSellingPrice(price, weight)
		require.NoError(t, err)
		wantSell := decimal.Max(decimal.Zero, price.Sub(price.Mul(d("0.04")).Round(2)).Sub(weight.Mul(d("340"))))
		assert.True(t, sell.Total.Equal(wantSell), "sell %s/%s: %s != %s", tc.price, tc.weight, sell.Total, wantSell)
	}
}

func TestCalculateSellingPrice_ClampsToZero(t *testing.T) {
	calc := NewCalculator(DefaultRates(), nil)

	got, err := calc.CalculateSellingPrice(d("100"), d("10"))
	require.NoError(t, err)
	assert.True(t, got.Total.IsZero())
	assert.True(t, got.Clamped)
	assert.True(t, got.TransportCharge.Equal(d("2800")))
}

func TestCalculate_RejectsNonPositiveInputs(t *testing.T) {
	calc := NewCalculator(DefaultRates(), nil)

	_, err := calc.CalculateBuyingPrice(decimal.Zero, d("1"))
	assert.ErrorIs(t, err, apperrors.ErrCalculation)

	_, err = calc.CalculateBuyingPrice(d("100"), d("-1"))
	assert.ErrorIs(t, err, apperrors.ErrCalculation)

	_, err = calc.CalculateSellingPrice(d("-5"), d("1"))
	assert.ErrorIs(t, err, apperrors.ErrCalculation)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
}

func TestCalculator_UsesConfiguredRates(t *testing.T) {
	rates := DefaultRates()
	rates.MandiChargeRate = d("0.02")
	rates.TractorRentPerQtl = decimal.Zero
	calc := NewCalculator(rates, nil)

	got, err := calc.CalculateBuyingPrice(d("1000"), d("1"))
	require.NoError(t, err)
	assert.True(t, got.MandiCharge.Equal(d("20")))
	assert.True(t, got.TractorRent.IsZero())
	assert.True(t, got.Total.Equal(d("1035")))
}

func TestCalculateBuyingPrice_ChargesRoundedToPaise(t *testing.T) {
	calc := NewCalculator(DefaultRates(), nil)

	base := BaseAmount(d("12.34"), d("1.5"))
	require.True(t, base.Equal(d("18.51")))

	got, err := calc.CalculateBuyingPrice(base, d("1.5"))
	require.NoError(t, err)
	assert.True(t, got.MandiCharge.Equal(d("0.28")), "mandi %s", got.MandiCharge)
	assert.True(t, got.Muddat.Equal(d("0.28")), "muddat %s", got.Muddat)
	assert.True(t, got.TractorRent.Equal(d("22.5")), "tractor %s", got.TractorRent)
	assert.True(t, got.Total.Equal(base.Add(got.MandiCharge).Add(got.TractorRent).Add(got.Muddat)))
	assert.True(t, got.Total.Equal(got.Total.Truncate(4)), "total %s exceeds storage scale", got.Total)
}

func TestCalculateSellingPrice_PartsSumToTotal(t *testing.T) {
	calc := NewCalculator(DefaultRates(), nil)

	base := BaseAmount(d("2345.67"), d("0.37"))
	got, err := calc.CalculateSellingPrice(base, d("0.37"))
	require.NoError(t, err)
	require.False(t, got.Clamped)
	assert.True(t, got.CashDiscount.Equal(d("34.72")), "discount %s", got.CashDiscount)
	assert.True(t, got.Total.Equal(base.Sub(got.CashDiscount).Sub(got.LabourCharge).Sub(got.TransportCharge)))
}
