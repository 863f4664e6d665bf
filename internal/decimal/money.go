package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Wire scales
const (
	AmountScale   = 2
	PriceScale    = 4
	QuantityScale = 4
	PercentScale  = 2
)

// Zero is decimal zero
var Zero = decimal.Zero

var hundred = decimal.NewFromInt(100)

// Parse reads a wire number. Surrounding whitespace is ignored and a
// decimal comma is accepted when no dot is present. Empty or garbage input
// reports ok=false.
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, false
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, false
	}
	return d, true
}

// ParsePtr is Parse returning nil for absent values
func ParsePtr(s string) *decimal.Decimal {
	d, ok := Parse(s)
	if !ok {
		return nil
	}
	return &d
}

// Format renders d with exactly scale fractional digits and a dot separator
func Format(d decimal.Decimal, scale int32) string {
	return d.StringFixed(scale)
}

// Round rounds to the amount scale
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}

// Percentage computes amount * (percent/100), rounded to 2 places
func Percentage(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred).Round(AmountScale)
}

// Value dereferences p, zero when nil
func Value(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return Zero
	}
	return *p
}
