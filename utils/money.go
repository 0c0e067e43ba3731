package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// All amounts headed for the payment provider are integer cents. Dollar
// values exist only at display time.

// PricedLine is the minimal shape a line needs to contribute to a
// subtotal.
type PricedLine struct {
	PriceCents int64
	Quantity   int
}

// SubtotalCents sums price * quantity over the given lines.
func SubtotalCents(lines []PricedLine) int64 {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.PriceCents * int64(line.Quantity)
	}
	return subtotal
}

// DiscountCents computes a percentage discount on a subtotal, rounded to
// the nearest cent with ties rounding half-up. Promo totals are
// user-visible, so the rule is pinned by test rather than left to float
// behavior.
func DiscountCents(subtotalCents int64, percent int64) int64 {
	return (subtotalCents*percent + 50) / 100
}

// TotalCents is subtotal minus discount plus tax. When the tax is not yet
// known callers pass 0 and must surface "tax pending" to the user rather
// than silently charging zero tax.
func TotalCents(subtotalCents, discountCents, taxCents int64) int64 {
	return subtotalCents - discountCents + taxCents
}

// DecomposeTotal splits a tax-inclusive total back into subtotal and tax
// for receipt redisplay: subtotal = total / (1 + rate), tax = total -
// subtotal, each rounded to 2 decimal places independently. Because the
// two are rounded independently, subtotal + tax may differ from the
// total by up to one cent; neither value is re-derived from the other
// after rounding.
func DecomposeTotal(totalCents int64, rate float64) (subtotal, tax float64) {
	total := decimal.NewFromInt(totalCents).Div(decimal.NewFromInt(100))
	divisor := decimal.NewFromFloat(1).Add(decimal.NewFromFloat(rate))
	exactSubtotal := total.Div(divisor)
	exactTax := total.Sub(exactSubtotal)

	subtotal, _ = exactSubtotal.Round(2).Float64()
	tax, _ = exactTax.Round(2).Float64()
	return subtotal, tax
}

// CentsToDollars converts an integer cent amount to its display value.
func CentsToDollars(cents int64) float64 {
	value, _ := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).Float64()
	return value
}

// FormatCents renders a cent amount as a dollar string, e.g. "$12.99".
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%s", decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2))
}
