// Package discount aggregates independent discount sources.
// Sources run in a fixed order, each yielding at most one applied discount;
// the total is capped so the final premium never goes negative.
package discount

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/errors"
)

// Type identifies a discount source
type Type string

const (
	TypePromo     Type = "PROMO_CODE"
	TypeGroup     Type = "GROUP"
	TypeCorporate Type = "CORPORATE"
	TypeBundle    Type = "BUNDLE"
)

// Applied is one granted discount
type Applied struct {
	// Type identifies the source
	Type Type `json:"type"`

	// Code is the promo code when the source is a promo
	Code string `json:"code,omitempty"`

	// Description explains the discount
	Description string `json:"description"`

	// Percentage is the percentage form when the discount is rate-based
	Percentage *decimal.Decimal `json:"percentage,omitempty"`

	// Amount is the rounded reduction
	Amount decimal.Decimal `json:"amount"`
}

// Result is the outcome of the discount stage
type Result struct {
	// BasePremium is the premium entering the stage
	BasePremium decimal.Decimal `json:"base_premium"`

	// Applied lists granted discounts in evaluation order
	Applied []Applied `json:"applied,omitempty"`

	// TotalDiscount is the capped sum of applied amounts
	TotalDiscount decimal.Decimal `json:"total_discount"`

	// FinalPremium is the rounded premium after discounts; never negative
	FinalPremium decimal.Decimal `json:"final_premium"`
}

// Settings holds the discount thresholds and rates.
// They are configuration, not code; see internal/config.
type Settings struct {
	// GroupMinPersons is the person count above which the group discount applies
	GroupMinPersons int

	// GroupRatePerPerson is the percentage granted per traveller
	GroupRatePerPerson decimal.Decimal

	// GroupMaxPercent caps the group discount percentage
	GroupMaxPercent decimal.Decimal

	// CorporatePercent is granted when the corporate flag is set
	CorporatePercent decimal.Decimal

	// BundleMinRisks is the optional-risk count that triggers the bundle discount
	BundleMinRisks int

	// BundlePercent is granted for a qualifying risk bundle
	BundlePercent decimal.Decimal
}

// DefaultSettings returns the standard discount schedule
func DefaultSettings() Settings {
	return Settings{
		GroupMinPersons:    5,
		GroupRatePerPerson: decimal.RequireFromString("0.5"),
		GroupMaxPercent:    decimal.RequireFromString("15"),
		CorporatePercent:   decimal.RequireFromString("10"),
		BundleMinRisks:     3,
		BundlePercent:      decimal.RequireFromString("5"),
	}
}

// Source yields zero or one applied discount for a request
type Source interface {
	// Name returns the source identifier
	Name() string

	// Apply evaluates the source; nil means no discount granted
	Apply(ctx context.Context, dctx *Context, base decimal.Decimal) (*Applied, error)
}

// Context carries the request, quote date and reference data into sources
type Context struct {
	Request *types.QuoteRequest
	Today   time.Time
	Data    refdata.Provider
}

// Engine runs the discount sources in fixed order
type Engine struct {
	sources []Source
}

// NewEngine builds the standard source chain
func NewEngine(settings Settings) *Engine {
	return &Engine{
		sources: []Source{
			&promoSource{},
			&groupSource{settings: settings},
			&corporateSource{settings: settings},
			&bundleSource{settings: settings},
		},
	}
}

// Apply evaluates all sources against the base premium.
// The total discount is floored so the final premium is never negative.
func (e *Engine) Apply(ctx context.Context, dctx *Context, base decimal.Decimal) (*Result, error) {
	result := &Result{
		BasePremium:   base,
		TotalDiscount: decimal.Zero,
	}

	for _, source := range e.sources {
		applied, err := source.Apply(ctx, dctx, base)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeInternal, err, "discount source %s failed", source.Name())
		}
		if applied == nil {
			continue
		}
		result.Applied = append(result.Applied, *applied)
		result.TotalDiscount = result.TotalDiscount.Add(applied.Amount)
	}

	if result.TotalDiscount.GreaterThan(base) {
		result.TotalDiscount = base
	}
	result.TotalDiscount = types.RoundMoney(result.TotalDiscount)
	result.FinalPremium = types.RoundMoney(base.Sub(result.TotalDiscount))

	return result, nil
}

// promoSource applies a promotional code.
// An unknown, expired or under-minimum code is silently ignored.
type promoSource struct{}

func (s *promoSource) Name() string { return "promo_code" }

func (s *promoSource) Apply(ctx context.Context, dctx *Context, base decimal.Decimal) (*Applied, error) {
	code := strings.TrimSpace(dctx.Request.PromoCode)
	if code == "" {
		return nil, nil
	}
	promo, found, err := dctx.Data.PromoByCode(ctx, code, dctx.Today)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	if !promo.Validity.ActiveOn(dctx.Today) {
		return nil, nil
	}
	if base.LessThan(promo.MinPremium) {
		return nil, nil
	}

	applied := &Applied{
		Type: TypePromo,
		Code: promo.Code,
	}
	switch promo.Kind {
	case types.DiscountPercentage:
		pct := promo.Value
		applied.Percentage = &pct
		applied.Amount = types.RoundMoney(base.Mul(pct).Div(decimal.NewFromInt(100)))
		applied.Description = fmt.Sprintf("promo code %s: %s%% off", promo.Code, pct.String())
	case types.DiscountFixedAmount:
		amount := promo.Value
		if amount.GreaterThan(base) {
			amount = base
		}
		applied.Amount = types.RoundMoney(amount)
		applied.Description = fmt.Sprintf("promo code %s: %s off", promo.Code, promo.Value.String())
	default:
		return nil, nil
	}
	return applied, nil
}

// groupSource applies a per-person discount for group bookings
type groupSource struct {
	settings Settings
}

func (s *groupSource) Name() string { return "group" }

func (s *groupSource) Apply(ctx context.Context, dctx *Context, base decimal.Decimal) (*Applied, error) {
	count := dctx.Request.PersonCount
	if count <= s.settings.GroupMinPersons {
		return nil, nil
	}
	pct := s.settings.GroupRatePerPerson.Mul(decimal.NewFromInt(int64(count)))
	if pct.GreaterThan(s.settings.GroupMaxPercent) {
		pct = s.settings.GroupMaxPercent
	}
	return &Applied{
		Type:        TypeGroup,
		Description: fmt.Sprintf("group of %d travellers: %s%% off", count, pct.String()),
		Percentage:  &pct,
		Amount:      types.RoundMoney(base.Mul(pct).Div(decimal.NewFromInt(100))),
	}, nil
}

// corporateSource applies a flat percentage for corporate purchases
type corporateSource struct {
	settings Settings
}

func (s *corporateSource) Name() string { return "corporate" }

func (s *corporateSource) Apply(ctx context.Context, dctx *Context, base decimal.Decimal) (*Applied, error) {
	if !dctx.Request.Corporate {
		return nil, nil
	}
	pct := s.settings.CorporatePercent
	return &Applied{
		Type:        TypeCorporate,
		Description: fmt.Sprintf("corporate purchase: %s%% off", pct.String()),
		Percentage:  &pct,
		Amount:      types.RoundMoney(base.Mul(pct).Div(decimal.NewFromInt(100))),
	}, nil
}

// bundleSource applies a discount for bundling several optional risks
type bundleSource struct {
	settings Settings
}

func (s *bundleSource) Name() string { return "bundle" }

func (s *bundleSource) Apply(ctx context.Context, dctx *Context, base decimal.Decimal) (*Applied, error) {
	distinct := make(map[string]struct{})
	for _, code := range dctx.Request.SelectedRisks {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		distinct[code] = struct{}{}
	}
	if s.settings.BundleMinRisks <= 0 || len(distinct) < s.settings.BundleMinRisks {
		return nil, nil
	}
	pct := s.settings.BundlePercent
	return &Applied{
		Type:        TypeBundle,
		Description: fmt.Sprintf("bundle of %d risks: %s%% off", len(distinct), pct.String()),
		Percentage:  &pct,
		Amount:      types.RoundMoney(base.Mul(pct).Div(decimal.NewFromInt(100))),
	}, nil
}
