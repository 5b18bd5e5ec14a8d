package utils

import (
	"fmt"
	"strings"
)

// FormatPrice formats an amount the Italian way: dot thousand separators,
// comma decimals, trailing euro sign ("1.234,56 €"). Used by the reports.
func FormatPrice(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	if negative {
		integerPart = integerPart[1:]
	}

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	out := strings.Join(result, ".") + "," + decimalPart + " €"
	if negative {
		out = "-" + out
	}
	return out
}
