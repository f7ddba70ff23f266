// Package format renders ledger values for display.
package format

import (
	"github.com/shopspring/decimal"

	"splitter/internal/core"
)

// CurrencySymbol prefixes every rendered amount.
const CurrencySymbol = "₹"

const displayDate = "2 Jan 2006"

// Date renders d as day, abbreviated month and year, e.g. "10 Jan 2024".
// The zero date renders as an empty string.
func Date(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(displayDate)
}

// Currency renders amount with two decimal places and no digit grouping,
// e.g. "₹300.00". Halves round away from zero.
func Currency(amount float64) string {
	return CurrencySymbol + decimal.NewFromFloat(amount).StringFixed(2)
}
