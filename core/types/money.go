// Package types - money rounding conventions.
package types

import (
	"github.com/shopspring/decimal"
)

// RoundMoney rounds a monetary amount to exactly 2 fractional digits,
// half-up. Every premium or discount amount leaving the pipeline passes
// through this.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundCoefficient rounds a coefficient to 4 fractional digits.
// Coefficients keep more precision than money for auditability.
func RoundCoefficient(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}
