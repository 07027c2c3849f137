// Package money formats integer cent amounts for human-facing text.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders cents as "PKR 1,205.00". An empty currency omits the prefix.
func Format(cents int64, currency string) string {
	amount := decimal.NewFromInt(cents).Shift(-2).StringFixed(2)

	negative := strings.HasPrefix(amount, "-")
	amount = strings.TrimPrefix(amount, "-")
	whole, frac, _ := strings.Cut(amount, ".")
	formatted := groupThousands(whole) + "." + frac
	if negative {
		formatted = "-" + formatted
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return formatted
	}
	return currency + " " + formatted
}

// ParseCents converts a decimal amount string such as "99.5" into cents,
// rounding half away from zero.
func ParseCents(value string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

func groupThousands(digits string) string {
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
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
