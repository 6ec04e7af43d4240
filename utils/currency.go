package utils

import (
	"strconv"
	"strings"
)

// FormatRupiah formats an amount in rupiah with dot thousand separators.
// Example: 75000 -> "Rp 75.000", -1500 -> "-Rp 1.500"
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}

	return sign + "Rp " + b.String()
}
