// Package pricing computes the base travel premium.
// Money is rounded half-up to 2 fractional digits on every output;
// coefficients keep 4 digits for auditability.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
)

// RiskPremium is the contribution of one selected optional risk
type RiskPremium struct {
	// Code is the risk code
	Code string `json:"code"`

	// Name is the risk display name
	Name string `json:"name"`

	// Coefficient is the risk's premium share
	Coefficient decimal.Decimal `json:"coefficient"`

	// Premium is the rounded contribution amount
	Premium decimal.Decimal `json:"premium"`
}

// Result is the outcome of the premium calculation.
// Exactly one pricing mode is active; fields belonging to the other mode
// stay nil or empty and are absent from serialized output.
type Result struct {
	// Mode is the pricing mode used
	Mode types.PricingMode `json:"mode"`

	// Currency is the echoed quote currency
	Currency types.Currency `json:"currency"`

	// BaseRate is the daily rate the premium is built from
	BaseRate decimal.Decimal `json:"base_rate"`

	// Days is the inclusive covered day count
	Days int `json:"days"`

	// AgeCoefficient is the bracket coefficient for the person's age
	AgeCoefficient decimal.Decimal `json:"age_coefficient"`

	// CountryCoefficient is applied in MEDICAL_LEVEL mode only; the
	// country-default rate already embeds it
	CountryCoefficient *decimal.Decimal `json:"country_coefficient,omitempty"`

	// DurationCoefficient is the per-day curve value for the day count
	DurationCoefficient decimal.Decimal `json:"duration_coefficient"`

	// RiskCoefficient is the summed coefficient of selected optional risks
	RiskCoefficient decimal.Decimal `json:"risk_coefficient"`

	// RiskBreakdown lists per-risk contributions
	RiskBreakdown []RiskPremium `json:"risk_breakdown,omitempty"`

	// CoverageLevelCode identifies the tier; MEDICAL_LEVEL mode only
	CoverageLevelCode string `json:"coverage_level_code,omitempty"`

	// CoverageAmount is the effective payout ceiling after any cap;
	// MEDICAL_LEVEL mode only
	CoverageAmount *decimal.Decimal `json:"coverage_amount,omitempty"`

	// PayoutLimit is the configured cap when one was in force;
	// MEDICAL_LEVEL mode only
	PayoutLimit *decimal.Decimal `json:"payout_limit,omitempty"`

	// PayoutLimitApplied reports whether the cap reduced the premium
	PayoutLimitApplied bool `json:"payout_limit_applied,omitempty"`

	// BasePremium is the rounded premium before discounts
	BasePremium decimal.Decimal `json:"base_premium"`
}
