// Package validation - the standard rule registry.
package validation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
)

// requiredNameRule rejects a missing person name
type requiredNameRule struct{}

func (r *requiredNameRule) Name() string   { return "required_person_name" }
func (r *requiredNameRule) Field() string  { return "person_name" }
func (r *requiredNameRule) Order() int     { return 10 }
func (r *requiredNameRule) Critical() bool { return true }

func (r *requiredNameRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	if strings.TrimSpace(req.PersonName) == "" {
		return []Entry{{Field: r.Field(), Message: "person name is required", Severity: SeverityCritical}}, nil
	}
	return nil, nil
}

// requiredBirthDateRule rejects a missing birth date
type requiredBirthDateRule struct{}

func (r *requiredBirthDateRule) Name() string   { return "required_birth_date" }
func (r *requiredBirthDateRule) Field() string  { return "birth_date" }
func (r *requiredBirthDateRule) Order() int     { return 20 }
func (r *requiredBirthDateRule) Critical() bool { return true }

func (r *requiredBirthDateRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	if req.BirthDate == nil {
		return []Entry{{Field: r.Field(), Message: "birth date is required", Severity: SeverityCritical}}, nil
	}
	return nil, nil
}

// requiredTripDatesRule rejects missing trip dates
type requiredTripDatesRule struct{}

func (r *requiredTripDatesRule) Name() string   { return "required_trip_dates" }
func (r *requiredTripDatesRule) Field() string  { return "trip_dates" }
func (r *requiredTripDatesRule) Order() int     { return 30 }
func (r *requiredTripDatesRule) Critical() bool { return true }

func (r *requiredTripDatesRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	if req.TripStart == nil {
		return []Entry{{Field: "trip_start", Message: "trip start date is required", Severity: SeverityCritical}}, nil
	}
	if req.TripEnd == nil {
		return []Entry{{Field: "trip_end", Message: "trip end date is required", Severity: SeverityCritical}}, nil
	}
	return nil, nil
}

// requiredCountryRule rejects a missing destination code
type requiredCountryRule struct{}

func (r *requiredCountryRule) Name() string   { return "required_country" }
func (r *requiredCountryRule) Field() string  { return "country_code" }
func (r *requiredCountryRule) Order() int     { return 40 }
func (r *requiredCountryRule) Critical() bool { return true }

func (r *requiredCountryRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	if strings.TrimSpace(req.CountryCode) == "" {
		return []Entry{{Field: r.Field(), Message: "destination country code is required", Severity: SeverityCritical}}, nil
	}
	return nil, nil
}

// coverageSelectionRule requires either a coverage level or the
// country-default flag; selecting both is ambiguous and rejected
type coverageSelectionRule struct{}

func (r *coverageSelectionRule) Name() string   { return "coverage_selection" }
func (r *coverageSelectionRule) Field() string  { return "coverage_level_code" }
func (r *coverageSelectionRule) Order() int     { return 50 }
func (r *coverageSelectionRule) Critical() bool { return true }

func (r *coverageSelectionRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	hasLevel := strings.TrimSpace(req.CoverageLevelCode) != ""
	if !hasLevel && !req.UseCountryDefault {
		return []Entry{{Field: r.Field(), Message: "either a coverage level or country-default pricing must be selected", Severity: SeverityCritical}}, nil
	}
	if hasLevel && req.UseCountryDefault {
		return []Entry{{Field: r.Field(), Message: "coverage level and country-default pricing are mutually exclusive", Severity: SeverityCritical}}, nil
	}
	return nil, nil
}

// isoCodeShapeRule checks the destination code shape independent of
// whether it resolves to a known country
type isoCodeShapeRule struct{}

func (r *isoCodeShapeRule) Name() string   { return "iso_code_shape" }
func (r *isoCodeShapeRule) Field() string  { return "country_code" }
func (r *isoCodeShapeRule) Order() int     { return 60 }
func (r *isoCodeShapeRule) Critical() bool { return false }

func (r *isoCodeShapeRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	code := req.CountryCode
	if len(code) != 2 {
		return []Entry{{Field: r.Field(), Message: "country code must be exactly 2 characters", Severity: SeverityError}}, nil
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return []Entry{{Field: r.Field(), Message: "country code must be upper-case letters", Severity: SeverityError}}, nil
		}
	}
	return nil, nil
}

// countryExistsRule resolves the destination against reference data
type countryExistsRule struct{}

func (r *countryExistsRule) Name() string   { return "country_exists" }
func (r *countryExistsRule) Field() string  { return "country_code" }
func (r *countryExistsRule) Order() int     { return 70 }
func (r *countryExistsRule) Critical() bool { return false }

func (r *countryExistsRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	country, found, err := vctx.Data.CountryByCode(ctx, req.CountryCode, vctx.Today)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Entry{{Field: r.Field(), Message: fmt.Sprintf("unknown destination country: %s", req.CountryCode), Severity: SeverityError}}, nil
	}
	if req.UseCountryDefault && country.DefaultDayPremium == nil {
		return []Entry{{Field: r.Field(), Message: fmt.Sprintf("country %s has no default daily rate", req.CountryCode), Severity: SeverityError}}, nil
	}
	return nil, nil
}

// coverageLevelExistsRule resolves the selected tier against reference data
type coverageLevelExistsRule struct{}

func (r *coverageLevelExistsRule) Name() string   { return "coverage_level_exists" }
func (r *coverageLevelExistsRule) Field() string  { return "coverage_level_code" }
func (r *coverageLevelExistsRule) Order() int     { return 80 }
func (r *coverageLevelExistsRule) Critical() bool { return false }

func (r *coverageLevelExistsRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	if strings.TrimSpace(req.CoverageLevelCode) == "" {
		return nil, nil
	}
	_, found, err := vctx.Data.CoverageLevelByCode(ctx, req.CoverageLevelCode, vctx.Today)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Entry{{Field: r.Field(), Message: fmt.Sprintf("unknown coverage level: %s", req.CoverageLevelCode), Severity: SeverityError}}, nil
	}
	return nil, nil
}

// riskCodesResolveRule resolves selected risk codes.
// Blank elements are skipped rather than reported; the list is permissive.
type riskCodesResolveRule struct{}

func (r *riskCodesResolveRule) Name() string   { return "risk_codes_resolve" }
func (r *riskCodesResolveRule) Field() string  { return "selected_risks" }
func (r *riskCodesResolveRule) Order() int     { return 90 }
func (r *riskCodesResolveRule) Critical() bool { return false }

func (r *riskCodesResolveRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	var entries []Entry
	for _, code := range req.SelectedRisks {
		if strings.TrimSpace(code) == "" {
			continue
		}
		_, found, err := vctx.Data.RiskByCode(ctx, code, vctx.Today)
		if err != nil {
			return nil, err
		}
		if !found {
			entries = append(entries, Entry{Field: r.Field(), Message: fmt.Sprintf("unknown risk code: %s", code), Severity: SeverityError})
		}
	}
	return entries, nil
}

// dateOrderRule rejects a trip ending before it starts
type dateOrderRule struct{}

func (r *dateOrderRule) Name() string   { return "date_order" }
func (r *dateOrderRule) Field() string  { return "trip_end" }
func (r *dateOrderRule) Order() int     { return 100 }
func (r *dateOrderRule) Critical() bool { return false }

func (r *dateOrderRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	if req.TripStart == nil || req.TripEnd == nil {
		return nil, nil
	}
	if req.TripEnd.Before(*req.TripStart) {
		return []Entry{{Field: r.Field(), Message: "trip end date precedes trip start date", Severity: SeverityError}}, nil
	}
	return nil, nil
}

// tripDurationRule rejects trips longer than the configured maximum
type tripDurationRule struct{}

func (r *tripDurationRule) Name() string   { return "trip_duration" }
func (r *tripDurationRule) Field() string  { return "trip_end" }
func (r *tripDurationRule) Order() int     { return 110 }
func (r *tripDurationRule) Critical() bool { return false }

func (r *tripDurationRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	if req.TripStart == nil || req.TripEnd == nil || req.TripEnd.Before(*req.TripStart) {
		return nil, nil
	}
	days := types.TripDays(*req.TripStart, *req.TripEnd)
	if vctx.MaxTripDays > 0 && days > vctx.MaxTripDays {
		return []Entry{{Field: r.Field(), Message: fmt.Sprintf("trip of %d days exceeds the %d day limit", days, vctx.MaxTripDays), Severity: SeverityError}}, nil
	}
	return nil, nil
}

// ageLimitRule rejects travellers older than the configured maximum
// or born after the quote date
type ageLimitRule struct{}

func (r *ageLimitRule) Name() string   { return "age_limit" }
func (r *ageLimitRule) Field() string  { return "birth_date" }
func (r *ageLimitRule) Order() int     { return 120 }
func (r *ageLimitRule) Critical() bool { return false }

func (r *ageLimitRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	if req.BirthDate == nil {
		return nil, nil
	}
	age := req.AgeOn(vctx.Today)
	if age < 0 {
		return []Entry{{Field: r.Field(), Message: "birth date is in the future", Severity: SeverityError}}, nil
	}
	if vctx.MaxAge > 0 && age > vctx.MaxAge {
		return []Entry{{Field: r.Field(), Message: fmt.Sprintf("age %d exceeds the insurable limit of %d", age, vctx.MaxAge), Severity: SeverityError}}, nil
	}
	return nil, nil
}

// futureTripRule warns about trips starting in the past; advisory only
type futureTripRule struct{}

func (r *futureTripRule) Name() string   { return "future_trip" }
func (r *futureTripRule) Field() string  { return "trip_start" }
func (r *futureTripRule) Order() int     { return 130 }
func (r *futureTripRule) Critical() bool { return false }

func (r *futureTripRule) Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error) {
	if req.TripStart == nil {
		return nil, nil
	}
	today := time.Date(vctx.Today.Year(), vctx.Today.Month(), vctx.Today.Day(), 0, 0, 0, 0, time.UTC)
	if req.TripStart.Before(today) {
		return []Entry{{Field: r.Field(), Message: "trip start date is in the past", Severity: SeverityWarning}}, nil
	}
	return nil, nil
}
