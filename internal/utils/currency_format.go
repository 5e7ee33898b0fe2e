package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupeePrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatRupees renders an amount with two decimals, locale digit grouping and the rupee sign.
func FormatRupees(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return rupeePrinter.Sprintf("₹%.2f", f)
}

// FormatQuantity renders a quintal quantity without trailing zeros.
func FormatQuantity(qty decimal.Decimal) string {
	return qty.Round(4).String() + " qtl"
}
