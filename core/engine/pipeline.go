// Package engine sequences the four quote stages.
// A request either completes validation, pricing, discounting and
// underwriting, or returns at the first blocking outcome. The pipeline is
// stateless per request; the only shared state is the parameter cache
// inside the reference-data provider.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/discount"
	"github.com/Normalno100/InsuranceApplication-sub001/core/pricing"
	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
	"github.com/Normalno100/InsuranceApplication-sub001/core/underwriting"
	"github.com/Normalno100/InsuranceApplication-sub001/core/validation"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/errors"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/logging"
)

// Status summarizes how far a quote progressed
type Status string

const (
	// StatusValidationFailed means blocking validation findings stopped the quote
	StatusValidationFailed Status = "VALIDATION_FAILED"

	// StatusDeclined means underwriting declined the quote
	StatusDeclined Status = "DECLINED"

	// StatusReview means underwriting requires manual review
	StatusReview Status = "REQUIRES_MANUAL_REVIEW"

	// StatusApproved means the quote completed all stages
	StatusApproved Status = "APPROVED"
)

// Outcome is the pipeline result.
// Validation is always present (it may hold only warnings); Pricing,
// Discount and Underwriting are nil when an earlier stage stopped the quote.
type Outcome struct {
	// Status summarizes the result
	Status Status `json:"status"`

	// Validation holds the ordered findings
	Validation *validation.Outcome `json:"validation"`

	// Pricing is the premium calculation result
	Pricing *pricing.Result `json:"pricing,omitempty"`

	// Discount is the discount aggregation result
	Discount *discount.Result `json:"discount,omitempty"`

	// Underwriting is the risk-acceptance result
	Underwriting *underwriting.Result `json:"underwriting,omitempty"`
}

// Limits bounds validation; values come from configuration
type Limits struct {
	// MaxTripDays is the longest insurable trip
	MaxTripDays int

	// MaxAge is the oldest insurable traveller
	MaxAge int
}

// Pipeline wires the four stages over one reference-data provider
type Pipeline struct {
	data        refdata.Provider
	validator   *validation.Engine
	calculator  *pricing.Calculator
	discounter  *discount.Engine
	underwriter *underwriting.Engine
	limits      Limits
}

// New creates a pipeline with explicitly wired stages
func New(data refdata.Provider, validator *validation.Engine, calculator *pricing.Calculator,
	discounter *discount.Engine, underwriter *underwriting.Engine, limits Limits) *Pipeline {
	return &Pipeline{
		data:        data,
		validator:   validator,
		calculator:  calculator,
		discounter:  discounter,
		underwriter: underwriter,
		limits:      limits,
	}
}

// NewDefault creates a pipeline with the standard stages.
// The provider is wrapped in the parameter cache; maxPayout of nil
// disables payout capping.
func NewDefault(data refdata.Provider, maxPayout *decimal.Decimal, settings discount.Settings, limits Limits) *Pipeline {
	cached := refdata.NewCachingProvider(data)
	return New(
		cached,
		validation.DefaultEngine(),
		pricing.NewCalculator(cached, maxPayout),
		discount.NewEngine(settings),
		underwriting.DefaultEngine(cached),
		limits,
	)
}

// Quote runs the four stages for one request.
//
// Validation findings are collected fully; the quote stops when any
// critical or error finding is present, checked once after the chain.
// Warnings ride along on successful outcomes. A non-nil error means an
// unexpected failure (reference store, malformed configuration), never a
// business outcome.
func (p *Pipeline) Quote(ctx context.Context, req *types.QuoteRequest, today time.Time) (*Outcome, error) {
	vctx := &validation.Context{
		Today:       today,
		Data:        p.data,
		MaxTripDays: p.limits.MaxTripDays,
		MaxAge:      p.limits.MaxAge,
	}

	vout, err := p.validator.Validate(ctx, vctx, req)
	if err != nil {
		return nil, err
	}
	if vout.Blocking() {
		if logging.Sugar != nil {
			logging.Sugar.Debugw("quote blocked by validation", "findings", len(vout.Entries))
		}
		return &Outcome{Status: StatusValidationFailed, Validation: vout}, nil
	}

	in, err := p.resolve(ctx, req, today)
	if err != nil {
		return nil, err
	}

	priced, err := p.calculator.Calculate(ctx, in)
	if err != nil {
		return nil, err
	}

	discounted, err := p.discounter.Apply(ctx, &discount.Context{
		Request: req,
		Today:   today,
		Data:    p.data,
	}, priced.BasePremium)
	if err != nil {
		return nil, err
	}

	uw, err := p.underwriter.Evaluate(ctx, &underwriting.Input{
		Request:        req,
		Age:            in.Age,
		Risks:          in.Risks,
		CoverageAmount: priced.CoverageAmount,
		Country:        in.Country,
		Days:           priced.Days,
		Today:          today,
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Validation:   vout,
		Pricing:      priced,
		Discount:     discounted,
		Underwriting: uw,
	}
	switch uw.Decision {
	case underwriting.DecisionDeclined:
		outcome.Status = StatusDeclined
	case underwriting.DecisionReview:
		outcome.Status = StatusReview
	default:
		outcome.Status = StatusApproved
	}
	return outcome, nil
}

// resolve turns validated codes into reference records.
// Validation already proved the records exist; a miss here means the
// reference snapshot changed mid-request and surfaces as an internal error.
func (p *Pipeline) resolve(ctx context.Context, req *types.QuoteRequest, today time.Time) (*pricing.Input, error) {
	country, found, err := p.data.CountryByCode(ctx, req.CountryCode, today)
	if err != nil {
		return nil, errors.Storage("resolving country", err)
	}
	if !found {
		return nil, errors.Internal("country disappeared after validation", nil).
			WithContext("country", req.CountryCode)
	}

	in := &pricing.Input{
		Request: req,
		Country: country,
		Age:     req.AgeOn(today),
		Today:   today,
	}

	if strings.TrimSpace(req.CoverageLevelCode) != "" {
		level, found, err := p.data.CoverageLevelByCode(ctx, req.CoverageLevelCode, today)
		if err != nil {
			return nil, errors.Storage("resolving coverage level", err)
		}
		if !found {
			return nil, errors.Internal("coverage level disappeared after validation", nil).
				WithContext("coverage_level", req.CoverageLevelCode)
		}
		in.Level = level
	}

	seen := make(map[string]struct{})
	for _, code := range req.SelectedRisks {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		risk, found, err := p.data.RiskByCode(ctx, code, today)
		if err != nil {
			return nil, errors.Storage("resolving risk", err)
		}
		if !found {
			return nil, errors.Internal("risk disappeared after validation", nil).
				WithContext("risk", code)
		}
		in.Risks = append(in.Risks, *risk)
	}

	return in, nil
}
