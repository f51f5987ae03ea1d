// Package types - reference-data record shapes.
// Reference records are read-only and request-independent; each carries an
// active date range checked against the quote date at lookup time.
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange bounds a reference record's validity
type DateRange struct {
	// ValidFrom is the first day the record applies
	ValidFrom time.Time `json:"valid_from"`

	// ValidTo is the last day the record applies; zero means open-ended
	ValidTo time.Time `json:"valid_to,omitempty"`
}

// ActiveOn reports whether the range covers the given date
func (d DateRange) ActiveOn(date time.Time) bool {
	if date.Before(d.ValidFrom) {
		return false
	}
	if !d.ValidTo.IsZero() && date.After(d.ValidTo) {
		return false
	}
	return true
}

// CountryProfile is a destination country record
type CountryProfile struct {
	// Code is the ISO 3166 alpha-2 code
	Code string `json:"code"`

	// Name is the display name
	Name string `json:"name"`

	// RiskGroup classifies the destination
	RiskGroup RiskGroup `json:"risk_group"`

	// Coefficient multiplies the base premium; always >= 0
	Coefficient decimal.Decimal `json:"coefficient"`

	// DefaultDayPremium is the flat daily rate for country-default pricing;
	// nil when the country offers none
	DefaultDayPremium *decimal.Decimal `json:"default_day_premium,omitempty"`

	// DefaultCurrency is the currency of DefaultDayPremium
	DefaultCurrency Currency `json:"default_currency,omitempty"`

	// Validity bounds the record
	Validity DateRange `json:"validity"`
}

// CoverageLevel is a medical coverage tier record
type CoverageLevel struct {
	// Code identifies the tier
	Code string `json:"code"`

	// CoverageAmount is the payout ceiling for the medical risk
	CoverageAmount decimal.Decimal `json:"coverage_amount"`

	// DailyRate is the base premium per covered day
	DailyRate decimal.Decimal `json:"daily_rate"`

	// Currency is the tier's currency
	Currency Currency `json:"currency"`

	// Validity bounds the record
	Validity DateRange `json:"validity"`
}

// RiskProfile is an insurable risk record
type RiskProfile struct {
	// Code identifies the risk
	Code string `json:"code"`

	// Name is the display name
	Name string `json:"name"`

	// Coefficient is the premium share added by this risk; the mandatory
	// medical risk carries 0 since it is the base, not an add-on
	Coefficient decimal.Decimal `json:"coefficient"`

	// Mandatory marks the risk as always included
	Mandatory bool `json:"mandatory"`

	// Validity bounds the record
	Validity DateRange `json:"validity"`
}

// DiscountKind distinguishes promo discount shapes
type DiscountKind string

const (
	// DiscountPercentage reduces the premium by a percentage
	DiscountPercentage DiscountKind = "PERCENTAGE"

	// DiscountFixedAmount reduces the premium by a fixed amount
	DiscountFixedAmount DiscountKind = "FIXED_AMOUNT"
)

// PromoCode is a promotional code record
type PromoCode struct {
	// Code is the promotional code
	Code string `json:"code"`

	// Kind selects percentage or fixed-amount discounting
	Kind DiscountKind `json:"kind"`

	// Value is the percentage or amount, per Kind
	Value decimal.Decimal `json:"value"`

	// MinPremium is the minimum qualifying base premium
	MinPremium decimal.Decimal `json:"min_premium"`

	// Validity bounds the code
	Validity DateRange `json:"validity"`
}
