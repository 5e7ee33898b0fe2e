package accounting

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/mandi_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ChargePlaces is the precision every derived charge is rounded to (paise).
const ChargePlaces int32 = 2

// Rates are the fixed charges applied on top of (buy) or deducted from (sell) a base amount.
// Percentages are fractions of the base amount; per-quintal charges are multiplied by weight.
type Rates struct {
	MandiChargeRate       decimal.Decimal
	MuddatRate            decimal.Decimal
	CashDiscountRate      decimal.Decimal
	TractorRentPerQtl     decimal.Decimal
	LabourChargePerQtl    decimal.Decimal
	TransportChargePerQtl decimal.Decimal
}

// DefaultRates returns the standard mandi rates.
func DefaultRates() Rates {
	return Rates{
		MandiChargeRate:       decimal.RequireFromString("0.015"),
		MuddatRate:            decimal.RequireFromString("0.015"),
		CashDiscountRate:      decimal.RequireFromString("0.04"),
		TractorRentPerQtl:     decimal.NewFromInt(15),
		LabourChargePerQtl:    decimal.NewFromInt(60),
		TransportChargePerQtl: decimal.NewFromInt(280),
	}
}

// BuyingBreakdown is the cost of a purchase: base plus every buy-side charge.
type BuyingBreakdown struct {
	Total       decimal.Decimal
	MandiCharge decimal.Decimal
	TractorRent decimal.Decimal
	Muddat      decimal.Decimal
}

// SellingBreakdown is the proceeds of a sale: base minus every sell-side deduction.
type SellingBreakdown struct {
	Total           decimal.Decimal
	CashDiscount    decimal.Decimal
	LabourCharge    decimal.Decimal
	TransportCharge decimal.Decimal
	Clamped         bool
}

// Calculator computes charge breakdowns from configured rates.
type Calculator struct {
	rates  Rates
	logger *slog.Logger
}

func NewCalculator(rates Rates, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{rates: rates, logger: logger}
}

// Rates returns the configured rates.
func (c *Calculator) Rates() Rates {
	return c.rates
}

// BaseAmount is price per quintal times quantity.
func BaseAmount(pricePerUnit, quantity decimal.Decimal) decimal.Decimal {
	return pricePerUnit.Mul(quantity)
}

func checkInputs(base, weight decimal.Decimal) error {
	if !base.IsPositive() {
		return apperrors.NewCalculationError(fmt.Sprintf("base price must be positive, got %s", base.String()))
	}
	if !weight.IsPositive() {
		return apperrors.NewCalculationError(fmt.Sprintf("weight must be positive, got %s", weight.String()))
	}
	return nil
}

func charge(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(ChargePlaces)
}

// CalculateBuyingPrice returns base + mandi charge + tractor rent + muddat.
// Each charge is rounded to paise before it is added, so the parts always sum to the total.
func (c *Calculator) CalculateBuyingPrice(base, weight decimal.Decimal) (BuyingBreakdown, error) {
	if err := checkInputs(base, weight); err != nil {
		return BuyingBreakdown{}, err
	}

	mandi := charge(base, c.rates.MandiChargeRate)
	tractor := charge(weight, c.rates.TractorRentPerQtl)
	muddat := charge(base, c.rates.MuddatRate)

	return BuyingBreakdown{
		Total:       base.Add(mandi).Add(tractor).Add(muddat),
		MandiCharge: mandi,
		TractorRent: tractor,
		Muddat:      muddat,
	}, nil
}

// CalculateSellingPrice returns base - cash discount - labour - transport.
// A negative result is clamped to zero and logged; it is not an error.
func (c *Calculator) CalculateSellingPrice(base, weight decimal.Decimal) (SellingBreakdown, error) {
	if err := checkInputs(base, weight); err != nil {
		return SellingBreakdown{}, err
	}

	discount := charge(base, c.rates.CashDiscountRate)
	labour := charge(weight, c.rates.LabourChargePerQtl)
	transport := charge(weight, c.rates.TransportChargePerQtl)

	out := SellingBreakdown{
		Total:           base.Sub(discount).Sub(labour).Sub(transport),
		CashDiscount:    discount,
		LabourCharge:    labour,
		TransportCharge: transport,
	}
	if out.Total.IsNegative() {
		c.logger.Warn("selling deductions exceed base amount, clamping total to zero",
			slog.String("base", base.String()),
			slog.String("weight", weight.String()),
			slog.String("unclamped_total", out.Total.String()))
		out.Total = decimal.Zero
		out.Clamped = true
	}
	return out, nil
}
