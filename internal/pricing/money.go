package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders cents the way Brazilian shoppers read prices, e.g.
// 123456 -> "R$ 1.234,56".
func FormatBRL(cents int64) string {
	amount := decimal.New(cents, -2)
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
