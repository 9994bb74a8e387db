package invoice

import (
	"strconv"

	"github.com/samber/lo"
)

// Total sums the per-row rounded subtotals. The sum itself is not rounded.
// A sum that overflows float64 is 0.
func Total(items []LineItem) float64 {
	sum := lo.SumBy(items, func(item LineItem) float64 {
		return item.Subtotal()
	})
	if !finite(sum) {
		return 0
	}
	return sum
}

// FormatAmount renders an amount with two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
