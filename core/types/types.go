// Package types - shared domain types for the travel quote pipeline.
package types

import (
	"time"
)

// Currency is an ISO 4217 currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// RiskGroup classifies a destination country by danger level
type RiskGroup string

const (
	RiskGroupLow      RiskGroup = "LOW"
	RiskGroupMedium   RiskGroup = "MEDIUM"
	RiskGroupHigh     RiskGroup = "HIGH"
	RiskGroupVeryHigh RiskGroup = "VERY_HIGH"
)

// Rank orders risk groups from safest to most dangerous
func (g RiskGroup) Rank() int {
	switch g {
	case RiskGroupLow:
		return 0
	case RiskGroupMedium:
		return 1
	case RiskGroupHigh:
		return 2
	case RiskGroupVeryHigh:
		return 3
	default:
		return -1
	}
}

// PricingMode selects how the base daily rate is derived
type PricingMode string

const (
	// ModeMedicalLevel prices via a selected coverage tier
	ModeMedicalLevel PricingMode = "MEDICAL_LEVEL"

	// ModeCountryDefault prices via the destination's flat daily rate
	ModeCountryDefault PricingMode = "COUNTRY_DEFAULT"
)

// QuoteRequest is the input to the quote pipeline.
// It is treated as immutable once validated.
type QuoteRequest struct {
	// PersonName is the insured person's full name
	PersonName string `json:"person_name"`

	// BirthDate is the insured person's date of birth
	BirthDate *time.Time `json:"birth_date"`

	// TripStart is the first covered day
	TripStart *time.Time `json:"trip_start"`

	// TripEnd is the last covered day
	TripEnd *time.Time `json:"trip_end"`

	// CountryCode is the ISO 3166 alpha-2 destination code
	CountryCode string `json:"country_code"`

	// CoverageLevelCode selects a medical coverage tier; empty with
	// UseCountryDefault set means country-default pricing
	CoverageLevelCode string `json:"coverage_level_code,omitempty"`

	// UseCountryDefault requests the destination's flat daily rate
	UseCountryDefault bool `json:"use_country_default,omitempty"`

	// SelectedRisks lists optional risk codes beyond the mandatory medical risk
	SelectedRisks []string `json:"selected_risks,omitempty"`

	// PromoCode is an optional promotional code
	PromoCode string `json:"promo_code,omitempty"`

	// PersonCount is the number of travellers on the quote
	PersonCount int `json:"person_count,omitempty"`

	// Corporate marks the quote as a corporate purchase
	Corporate bool `json:"corporate,omitempty"`

	// Currency is the requested quote currency; echoed, never converted
	Currency Currency `json:"currency,omitempty"`
}

// TripDays returns the inclusive day count of a trip.
// A trip starting and ending on the same date counts as one covered day.
func TripDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// AgeOn returns the person's age in full years on the given date.
// Returns -1 when the birth date is absent.
func (r *QuoteRequest) AgeOn(date time.Time) int {
	if r.BirthDate == nil {
		return -1
	}
	age := date.Year() - r.BirthDate.Year()
	anniversary := time.Date(date.Year(), r.BirthDate.Month(), r.BirthDate.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(anniversary) {
		age--
	}
	return age
}
