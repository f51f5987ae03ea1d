// Package refdata provides point lookups into reference data.
// The pipeline only ever consumes single-record lookups keyed by code and
// quote date; storage and refresh concerns live behind the Provider interface.
package refdata

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
)

// AgeBracket maps an age ceiling to a premium coefficient.
// Brackets are ordered by UpToAge ascending; the last bracket is open-ended.
type AgeBracket struct {
	// UpToAge is the inclusive upper bound of the bracket; 0 means unbounded
	UpToAge int `json:"up_to_age"`

	// Coefficient multiplies the base premium for ages in the bracket
	Coefficient decimal.Decimal `json:"coefficient"`
}

// DurationBand maps a minimum trip length to a per-day coefficient.
// Bands are ordered by MinDays ascending; the band with the largest MinDays
// not exceeding the day count applies.
type DurationBand struct {
	// MinDays is the inclusive lower bound of the band
	MinDays int `json:"min_days"`

	// Coefficient scales the per-day premium for trips in the band
	Coefficient decimal.Decimal `json:"coefficient"`
}

// Provider supplies reference records for a quote date.
// Lookups report absence with the found flag; an error means the backing
// store itself failed and the pipeline surfaces it as an internal failure.
type Provider interface {
	// CountryByCode resolves a destination country active on the given date
	CountryByCode(ctx context.Context, code string, on time.Time) (*types.CountryProfile, bool, error)

	// Countries lists every destination country active on the given date,
	// ordered by code
	Countries(ctx context.Context, on time.Time) ([]types.CountryProfile, error)

	// CoverageLevelByCode resolves a medical coverage tier active on the given date
	CoverageLevelByCode(ctx context.Context, code string, on time.Time) (*types.CoverageLevel, bool, error)

	// RiskByCode resolves a risk profile active on the given date
	RiskByCode(ctx context.Context, code string, on time.Time) (*types.RiskProfile, bool, error)

	// PromoByCode resolves a promo code record regardless of validity;
	// callers check the validity range themselves
	PromoByCode(ctx context.Context, code string, on time.Time) (*types.PromoCode, bool, error)

	// AgeBrackets returns the age coefficient table active on the given date
	AgeBrackets(ctx context.Context, on time.Time) ([]AgeBracket, error)

	// DurationBands returns the duration coefficient curve active on the given date
	DurationBands(ctx context.Context, on time.Time) ([]DurationBand, error)

	// Param resolves a named numeric parameter scoped to a rule
	Param(ctx context.Context, rule, name string) (decimal.Decimal, bool, error)
}

// AgeCoefficient resolves the coefficient for an age from a bracket table.
// Falls back to 1 when the table is empty.
func AgeCoefficient(brackets []AgeBracket, age int) decimal.Decimal {
	for _, b := range brackets {
		if b.UpToAge != 0 && age <= b.UpToAge {
			return b.Coefficient
		}
	}
	for _, b := range brackets {
		if b.UpToAge == 0 {
			return b.Coefficient
		}
	}
	if len(brackets) > 0 {
		return brackets[len(brackets)-1].Coefficient
	}
	return decimal.NewFromInt(1)
}

// DurationCoefficient resolves the per-day coefficient for a day count.
// Falls back to 1 when no band applies.
func DurationCoefficient(bands []DurationBand, days int) decimal.Decimal {
	coeff := decimal.NewFromInt(1)
	for _, b := range bands {
		if days >= b.MinDays {
			coeff = b.Coefficient
		}
	}
	return coeff
}
