package utils

import (
	"github.com/shopspring/decimal"
)

// FormatRM formats an amount as Malaysian Ringgit with two decimal places,
// e.g. decimal 1000 -> "RM1000.00". Used in customer-facing validation messages.
func FormatRM(amount decimal.Decimal) string {
	return "RM" + amount.StringFixed(2)
}