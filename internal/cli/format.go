// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an exact amount in dollars with comma separators.
// Whole amounts drop the cents: 50000 -> "$50,000", 2800.5 -> "$2,800.50".
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg())
	}

	cents := d.Round(2)
	whole := cents.Truncate(0)
	s := "$" + FormatNumber(whole.IntPart())
	if frac := cents.Sub(whole); !frac.IsZero() {
		s += "." + fmt.Sprintf("%02d", frac.Shift(2).IntPart())
	}
	return s
}

// FormatSignedMoney formats d with an explicit sign, e.g. "+$1,500".
func FormatSignedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return FormatMoney(d)
	}
	return "+" + FormatMoney(d)
}

// FormatAmount formats a projected figure rounded to whole dollars.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	n := int64(math.Round(v))
	if n < 0 {
		return "-$" + FormatNumber(-n)
	}
	return "$" + FormatNumber(n)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a value already expressed in percent, e.g. 83.3 -> "83.3%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatUtilization formats a category utilization; ok is false when the
// category has nothing allocated.
func FormatUtilization(pct decimal.Decimal, ok bool) string {
	if !ok {
		return "n/a"
	}
	return pct.StringFixed(1) + "%"
}

// FormatMonth turns "2024-04" into "Apr 2024". Unparseable keys pass through.
func FormatMonth(month string) string {
	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 {
		return month
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return month
	}
	names := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	return names[m-1] + " " + parts[0]
}
