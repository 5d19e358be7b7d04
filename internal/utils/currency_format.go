package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount in Brazilian currency notation with two decimal
// places, e.g. "R$ 1.234,56" or "-R$ 0,50". Rounding happens only here, at
// presentation; stored amounts keep full precision.
func FormatBRL(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString("R$ ")
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
