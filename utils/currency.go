package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatIndian groups an amount the Indian way (12,34,567). Paise are shown
// only when non-zero.
func FormatIndian(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	amount = amount.Abs().Round(2)

	whole := amount.Truncate(0).String()
	frac := amount.Sub(amount.Truncate(0))

	var grouped string
	if len(whole) <= 3 {
		grouped = whole
	} else {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	}

	if !frac.IsZero() {
		grouped += "." + frac.StringFixed(2)[2:]
	}
	if neg {
		return "-" + grouped
	}
	return grouped
}
