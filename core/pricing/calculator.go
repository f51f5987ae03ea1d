// Package pricing - premium calculation.
package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/errors"
)

// Input carries a validated request with its resolved reference records
type Input struct {
	// Request is the validated quote request
	Request *types.QuoteRequest

	// Country is the resolved destination profile
	Country *types.CountryProfile

	// Level is the resolved coverage tier; nil selects country-default pricing
	Level *types.CoverageLevel

	// Risks are the resolved optional risk profiles for the selected codes
	Risks []types.RiskProfile

	// Age is the person's age on the quote date
	Age int

	// Today is the quote date
	Today time.Time
}

// Calculator derives the base premium from tabulated coefficients
type Calculator struct {
	data      refdata.Provider
	maxPayout *decimal.Decimal
}

// NewCalculator creates a calculator.
// maxPayout caps the effective coverage amount in MEDICAL_LEVEL mode;
// nil disables capping.
func NewCalculator(data refdata.Provider, maxPayout *decimal.Decimal) *Calculator {
	return &Calculator{data: data, maxPayout: maxPayout}
}

// Calculate computes the pricing result for a validated input.
//
// Day count is inclusive: a trip starting and ending on the same date is
// one covered day. The country coefficient is applied exactly once: in
// MEDICAL_LEVEL mode as an explicit factor, in COUNTRY_DEFAULT mode it is
// already embedded in the country's flat daily rate and never reapplied.
func (c *Calculator) Calculate(ctx context.Context, in *Input) (*Result, error) {
	days := types.TripDays(*in.Request.TripStart, *in.Request.TripEnd)

	brackets, err := c.data.AgeBrackets(ctx, in.Today)
	if err != nil {
		return nil, errors.Pricing("loading age brackets", err)
	}
	bands, err := c.data.DurationBands(ctx, in.Today)
	if err != nil {
		return nil, errors.Pricing("loading duration bands", err)
	}

	ageCoeff := refdata.AgeCoefficient(brackets, in.Age)
	durCoeff := refdata.DurationCoefficient(bands, days)

	result := &Result{
		Currency:            in.Request.Currency,
		Days:                days,
		AgeCoefficient:      types.RoundCoefficient(ageCoeff),
		DurationCoefficient: types.RoundCoefficient(durCoeff),
	}
	if result.Currency == "" {
		result.Currency = types.CurrencyEUR
	}

	var baseRate decimal.Decimal
	if in.Level != nil {
		result.Mode = types.ModeMedicalLevel
		result.CoverageLevelCode = in.Level.Code
		baseRate = in.Level.DailyRate
		countryCoeff := types.RoundCoefficient(in.Country.Coefficient)
		result.CountryCoefficient = &countryCoeff
	} else {
		if in.Country.DefaultDayPremium == nil {
			return nil, errors.Pricing("country has no default daily rate", nil).
				WithContext("country", in.Country.Code)
		}
		result.Mode = types.ModeCountryDefault
		baseRate = *in.Country.DefaultDayPremium
	}
	result.BaseRate = baseRate

	// Core premium share: base rate with age, country and duration factors
	// applied over the covered days. Risk add-ons scale this share.
	core := baseRate.Mul(ageCoeff)
	if result.Mode == types.ModeMedicalLevel {
		core = core.Mul(in.Country.Coefficient)
	}
	core = core.Mul(durCoeff).Mul(decimal.NewFromInt(int64(days)))

	riskSum := decimal.Zero
	for _, risk := range in.Risks {
		if risk.Mandatory {
			// The mandatory medical risk is the base, not an add-on
			continue
		}
		riskSum = riskSum.Add(risk.Coefficient)
		result.RiskBreakdown = append(result.RiskBreakdown, RiskPremium{
			Code:        risk.Code,
			Name:        risk.Name,
			Coefficient: types.RoundCoefficient(risk.Coefficient),
			Premium:     types.RoundMoney(core.Mul(risk.Coefficient)),
		})
	}
	result.RiskCoefficient = types.RoundCoefficient(riskSum)

	premium := core.Mul(decimal.NewFromInt(1).Add(riskSum))

	if result.Mode == types.ModeMedicalLevel {
		coverage := in.Level.CoverageAmount
		if c.maxPayout != nil && c.maxPayout.LessThan(coverage) {
			// Cap the effective coverage and scale the premium down
			// proportionally
			ratio := c.maxPayout.Div(coverage)
			premium = premium.Mul(ratio)
			coverage = *c.maxPayout
			limit := *c.maxPayout
			result.PayoutLimit = &limit
			result.PayoutLimitApplied = true
		}
		result.CoverageAmount = &coverage
	}

	result.BasePremium = types.RoundMoney(premium)
	if result.BasePremium.IsNegative() {
		return nil, errors.Pricing("computed premium is negative", nil).
			WithContext("premium", result.BasePremium.String())
	}

	return result, nil
}
