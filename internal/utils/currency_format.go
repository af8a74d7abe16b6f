package utils

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var displayPrinter = message.NewPrinter(language.English)

// FormatAmount renders an amount as "symbol + locale-grouped number" at the
// given decimal precision.
// Example: FormatAmount(1234567.891, "₹", 2) returns "₹1,234,567.89".
// NaN and infinite amounts coerce to 0; an empty symbol yields a bare
// numeral.
func FormatAmount(amount float64, symbol string, decimals int) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	if decimals < 0 {
		decimals = 0
	}

	rounded, _ := decimal.NewFromFloat(amount).Round(int32(decimals)).Float64()
	grouped := displayPrinter.Sprint(number.Decimal(rounded,
		number.Scale(decimals),
	))
	return symbol + grouped
}
