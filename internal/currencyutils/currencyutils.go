// Package currencyutils converts loosely formatted monetary text into exact
// decimals and back into fixed two-decimal strings.
package currencyutils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of fractional digits used on presentation.
const DisplayPlaces = 2

// amountReplacer strips the currency symbol and the thousands separator
// used by the source exports.
var amountReplacer = strings.NewReplacer("$", "", ",", "")

// ParseAmount parses a monetary cell into an exact decimal.
//
// Parsing is best-effort: blank cells, cells that are not numbers and cells
// that look numeric but carry stray characters all yield zero. A malformed
// cell must never abort a bulk reconciliation run.
func ParseAmount(raw string) decimal.Decimal {
	amount, ok := TryParseAmount(raw)
	if !ok {
		return decimal.Zero
	}
	return amount
}

// TryParseAmount is ParseAmount that also reports whether the cell held a
// usable number. Blank cells report true: they are an explicit zero.
func TryParseAmount(raw string) (decimal.Decimal, bool) {
	s := StandardizeAmount(raw)
	if s == "" {
		return decimal.Zero, true
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// StandardizeAmount trims whitespace and strips "$" and "," from raw.
func StandardizeAmount(raw string) string {
	return amountReplacer.Replace(strings.TrimSpace(raw))
}

// FormatAmount renders amount with two fractional digits, rounding half
// away from zero (10.005 -> "10.01", -10.005 -> "-10.01").
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(DisplayPlaces)
}

// ExceedsTolerance reports whether |diff| is strictly greater than tolerance.
func ExceedsTolerance(diff, tolerance decimal.Decimal) bool {
	return diff.Abs().GreaterThan(tolerance)
}
