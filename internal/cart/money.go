package cart

import "github.com/shopspring/decimal"

// FormatRSD renders an amount the way the shop displays prices: Serbian
// grouping with a dot, comma before exactly two fraction digits and the
// currency code appended, e.g. 2850 -> "2.850,00 RSD".
func FormatRSD(v decimal.Decimal) string {
	s := v.RoundBank(2).StringFixed(2)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	whole, frac := s[:len(s)-3], s[len(s)-2:]

	n := len(whole)
	rem := n % 3
	if rem == 0 {
		rem = 3
	}
	out := whole[:rem]
	for i := rem; i < n; i += 3 {
		out += "." + whole[i:i+3]
	}
	if neg {
		out = "-" + out
	}
	return out + "," + frac + " RSD"
}

// FormatPrice is FormatRSD for raw float amounts coming from the catalog.
func FormatPrice(v float64) string {
	return FormatRSD(decimal.NewFromFloat(v))
}
