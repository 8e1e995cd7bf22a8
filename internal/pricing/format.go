package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCOP renders an amount the Colombian peso way: whole pesos, "." as the
// thousands separator and a "$" prefix, e.g. $17.500.
func FormatCOP(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	digits := rounded.Abs().String()

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')

	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
