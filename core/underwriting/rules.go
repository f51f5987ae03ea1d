// Package underwriting - the standard rule set.
package underwriting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
)

// paramOrDefault resolves a rule parameter with a fallback
func paramOrDefault(ctx context.Context, params refdata.Provider, rule, name string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v, found, err := params.Param(ctx, rule, name)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !found {
		return fallback, nil
	}
	return v, nil
}

// RiskAgeLimitRule blocks a risk selection above an age threshold,
// e.g. extreme sport cover for elderly travellers.
type RiskAgeLimitRule struct {
	// RiskCode is the blocked risk
	RiskCode string
}

func (r *RiskAgeLimitRule) Name() string { return "risk_age_limit" }

func (r *RiskAgeLimitRule) Description() string {
	return "blocks selected risks not offered above an age threshold"
}

func (r *RiskAgeLimitRule) Evaluate(ctx context.Context, in *Input, params refdata.Provider) (Evaluation, error) {
	maxAge, err := paramOrDefault(ctx, params, r.Name(), "max_age", decimal.NewFromInt(70))
	if err != nil {
		return Evaluation{}, err
	}
	if !in.HasRisk(r.RiskCode) {
		return Evaluation{RuleName: r.Name(), Severity: SeverityPass}, nil
	}
	if decimal.NewFromInt(int64(in.Age)).GreaterThan(maxAge) {
		return Evaluation{
			RuleName: r.Name(),
			Severity: SeverityBlocking,
			Message:  fmt.Sprintf("%s cover is not offered at age %d (limit %s)", r.RiskCode, in.Age, maxAge.String()),
		}, nil
	}
	return Evaluation{RuleName: r.Name(), Severity: SeverityPass}, nil
}

// CoverageAgeRule escalates high coverage combined with advanced age.
// Above the review threshold the quote needs manual review; above the
// decline threshold it is blocked outright.
type CoverageAgeRule struct{}

func (r *CoverageAgeRule) Name() string { return "coverage_age" }

func (r *CoverageAgeRule) Description() string {
	return "escalates high coverage amounts for older travellers"
}

func (r *CoverageAgeRule) Evaluate(ctx context.Context, in *Input, params refdata.Provider) (Evaluation, error) {
	if in.CoverageAmount == nil {
		return Evaluation{RuleName: r.Name(), Severity: SeverityPass}, nil
	}
	minAge, err := paramOrDefault(ctx, params, r.Name(), "min_age", decimal.NewFromInt(65))
	if err != nil {
		return Evaluation{}, err
	}
	reviewAt, err := paramOrDefault(ctx, params, r.Name(), "review_coverage", decimal.NewFromInt(150000))
	if err != nil {
		return Evaluation{}, err
	}
	declineAt, err := paramOrDefault(ctx, params, r.Name(), "decline_coverage", decimal.NewFromInt(300000))
	if err != nil {
		return Evaluation{}, err
	}

	if decimal.NewFromInt(int64(in.Age)).LessThan(minAge) {
		return Evaluation{RuleName: r.Name(), Severity: SeverityPass}, nil
	}
	if in.CoverageAmount.GreaterThanOrEqual(declineAt) {
		return Evaluation{
			RuleName: r.Name(),
			Severity: SeverityBlocking,
			Message:  fmt.Sprintf("coverage %s at age %d exceeds the acceptance limit %s", in.CoverageAmount.String(), in.Age, declineAt.String()),
		}, nil
	}
	if in.CoverageAmount.GreaterThanOrEqual(reviewAt) {
		return Evaluation{
			RuleName: r.Name(),
			Severity: SeverityReviewRequired,
			Message:  fmt.Sprintf("coverage %s at age %d is above the automatic approval limit %s", in.CoverageAmount.String(), in.Age, reviewAt.String()),
		}, nil
	}
	return Evaluation{RuleName: r.Name(), Severity: SeverityPass}, nil
}

// TripRiskGroupRule limits automatic approval of long trips to risky
// destinations.
type TripRiskGroupRule struct{}

func (r *TripRiskGroupRule) Name() string { return "trip_risk_group" }

func (r *TripRiskGroupRule) Description() string {
	return "limits trip duration by destination risk group"
}

func (r *TripRiskGroupRule) Evaluate(ctx context.Context, in *Input, params refdata.Provider) (Evaluation, error) {
	var paramName string
	var fallback decimal.Decimal
	switch in.Country.RiskGroup {
	case types.RiskGroupHigh:
		paramName = "max_days_high"
		fallback = decimal.NewFromInt(60)
	case types.RiskGroupVeryHigh:
		paramName = "max_days_very_high"
		fallback = decimal.NewFromInt(30)
	default:
		return Evaluation{RuleName: r.Name(), Severity: SeverityPass}, nil
	}

	maxDays, err := paramOrDefault(ctx, params, r.Name(), paramName, fallback)
	if err != nil {
		return Evaluation{}, err
	}
	if decimal.NewFromInt(int64(in.Days)).GreaterThan(maxDays) {
		return Evaluation{
			RuleName: r.Name(),
			Severity: SeverityReviewRequired,
			Message:  fmt.Sprintf("%d days in a %s risk destination exceeds the automatic approval limit of %s days", in.Days, in.Country.RiskGroup, maxDays.String()),
		}, nil
	}
	return Evaluation{RuleName: r.Name(), Severity: SeverityPass}, nil
}

// SeniorTravellerRule flags senior travellers in the trace.
// Warning only; the decision is never affected.
type SeniorTravellerRule struct{}

func (r *SeniorTravellerRule) Name() string { return "senior_traveller" }

func (r *SeniorTravellerRule) Description() string {
	return "flags senior travellers for the evaluation trace"
}

func (r *SeniorTravellerRule) Evaluate(ctx context.Context, in *Input, params refdata.Provider) (Evaluation, error) {
	warnAge, err := paramOrDefault(ctx, params, r.Name(), "warn_age", decimal.NewFromInt(65))
	if err != nil {
		return Evaluation{}, err
	}
	if decimal.NewFromInt(int64(in.Age)).GreaterThanOrEqual(warnAge) {
		return Evaluation{
			RuleName: r.Name(),
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("traveller aged %d", in.Age),
		}, nil
	}
	return Evaluation{RuleName: r.Name(), Severity: SeverityPass}, nil
}
