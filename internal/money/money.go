// Package money formats amounts the way the shop quotes prices: Argentine
// pesos, "$ " prefix, "." thousands separator, "," decimal separator and at
// most two fraction digits with trailing zeros dropped.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Symbol           = "$"
	GroupSeparator   = "."
	DecimalSeparator = ","
	FractionDigits   = 2
)

// Format renders an amount as a price label, e.g. 10000 -> "$ 10.000"
func Format(amount decimal.Decimal) string {
	rounded := amount.Round(FractionDigits)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	fixed := rounded.StringFixed(FractionDigits)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString(Symbol)
	b.WriteString(" ")
	b.WriteString(group(intPart))
	if fracPart != "" {
		b.WriteString(DecimalSeparator)
		b.WriteString(fracPart)
	}
	return b.String()
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(GroupSeparator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
