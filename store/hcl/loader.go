// Package hcl loads reference tables from HCL documents.
// Countries, coverage levels, risks, promo codes, coefficient tables and
// rule parameters are authored as .hcl files and loaded into an in-memory
// provider at startup.
package hcl

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/errors"
)

const dateLayout = "2006-01-02"

// document is the root schema of a reference file
type document struct {
	Countries     []countryBlock      `hcl:"country,block"`
	Levels        []levelBlock        `hcl:"coverage_level,block"`
	Risks         []riskBlock         `hcl:"risk,block"`
	Promos        []promoBlock        `hcl:"promo,block"`
	AgeBrackets   []ageBracketBlock   `hcl:"age_bracket,block"`
	DurationBands []durationBandBlock `hcl:"duration_band,block"`
	Params        []paramBlock        `hcl:"param,block"`
}

type countryBlock struct {
	Code              string  `hcl:"code,label"`
	Name              string  `hcl:"name"`
	RiskGroup         string  `hcl:"risk_group"`
	Coefficient       string  `hcl:"coefficient"`
	DefaultDayPremium *string `hcl:"default_day_premium,optional"`
	DefaultCurrency   *string `hcl:"default_currency,optional"`
	ValidFrom         string  `hcl:"valid_from"`
	ValidTo           *string `hcl:"valid_to,optional"`
}

type levelBlock struct {
	Code           string  `hcl:"code,label"`
	CoverageAmount string  `hcl:"coverage_amount"`
	DailyRate      string  `hcl:"daily_rate"`
	Currency       string  `hcl:"currency"`
	ValidFrom      string  `hcl:"valid_from"`
	ValidTo        *string `hcl:"valid_to,optional"`
}

type riskBlock struct {
	Code        string  `hcl:"code,label"`
	Name        string  `hcl:"name"`
	Coefficient string  `hcl:"coefficient"`
	Mandatory   *bool   `hcl:"mandatory,optional"`
	ValidFrom   string  `hcl:"valid_from"`
	ValidTo     *string `hcl:"valid_to,optional"`
}

type promoBlock struct {
	Code       string  `hcl:"code,label"`
	Kind       string  `hcl:"kind"`
	Value      string  `hcl:"value"`
	MinPremium string  `hcl:"min_premium"`
	ValidFrom  string  `hcl:"valid_from"`
	ValidTo    *string `hcl:"valid_to,optional"`
}

type ageBracketBlock struct {
	UpToAge     int    `hcl:"up_to_age"`
	Coefficient string `hcl:"coefficient"`
}

type durationBandBlock struct {
	MinDays     int    `hcl:"min_days"`
	Coefficient string `hcl:"coefficient"`
}

type paramBlock struct {
	Rule  string `hcl:"rule,label"`
	Name  string `hcl:"name,label"`
	Value string `hcl:"value"`
}

// Loader parses HCL reference documents
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a loader
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// LoadDir loads every .hcl file under dir into one provider
func (l *Loader) LoadDir(dir string) (*refdata.MemoryProvider, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".hcl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Storage("walking reference directory", err).WithContext("dir", dir)
	}

	provider := refdata.NewMemoryProvider()
	for _, file := range files {
		if err := l.loadFile(provider, file); err != nil {
			return nil, err
		}
	}
	return provider, nil
}

// LoadFile loads a single .hcl document into the provider
func (l *Loader) LoadFile(provider *refdata.MemoryProvider, path string) error {
	return l.loadFile(provider, path)
}

func (l *Loader) loadFile(provider *refdata.MemoryProvider, path string) error {
	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return errors.Config("parsing reference document", diags).WithContext("file", path)
	}

	var doc document
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return errors.Config("decoding reference document", diags).WithContext("file", path)
	}

	for _, b := range doc.Countries {
		country, err := b.convert()
		if err != nil {
			return errors.Config("invalid country block", err).WithContext("file", path).WithContext("code", b.Code)
		}
		provider.AddCountry(*country)
	}
	for _, b := range doc.Levels {
		level, err := b.convert()
		if err != nil {
			return errors.Config("invalid coverage_level block", err).WithContext("file", path).WithContext("code", b.Code)
		}
		provider.AddCoverageLevel(*level)
	}
	for _, b := range doc.Risks {
		risk, err := b.convert()
		if err != nil {
			return errors.Config("invalid risk block", err).WithContext("file", path).WithContext("code", b.Code)
		}
		provider.AddRisk(*risk)
	}
	for _, b := range doc.Promos {
		promo, err := b.convert()
		if err != nil {
			return errors.Config("invalid promo block", err).WithContext("file", path).WithContext("code", b.Code)
		}
		provider.AddPromo(*promo)
	}

	if len(doc.AgeBrackets) > 0 {
		brackets := make([]refdata.AgeBracket, 0, len(doc.AgeBrackets))
		for _, b := range doc.AgeBrackets {
			coeff, err := decimal.NewFromString(b.Coefficient)
			if err != nil {
				return errors.Config("invalid age_bracket coefficient", err).WithContext("file", path)
			}
			brackets = append(brackets, refdata.AgeBracket{UpToAge: b.UpToAge, Coefficient: coeff})
		}
		provider.SetAgeBrackets(brackets)
	}
	if len(doc.DurationBands) > 0 {
		bands := make([]refdata.DurationBand, 0, len(doc.DurationBands))
		for _, b := range doc.DurationBands {
			coeff, err := decimal.NewFromString(b.Coefficient)
			if err != nil {
				return errors.Config("invalid duration_band coefficient", err).WithContext("file", path)
			}
			bands = append(bands, refdata.DurationBand{MinDays: b.MinDays, Coefficient: coeff})
		}
		provider.SetDurationBands(bands)
	}
	for _, b := range doc.Params {
		value, err := decimal.NewFromString(b.Value)
		if err != nil {
			return errors.Config("invalid param value", err).WithContext("file", path).WithContext("param", b.Rule+"/"+b.Name)
		}
		provider.SetParam(b.Rule, b.Name, value)
	}

	return nil
}

func parseRange(from string, to *string) (types.DateRange, error) {
	var r types.DateRange
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return r, err
	}
	r.ValidFrom = start
	if to != nil {
		end, err := time.Parse(dateLayout, *to)
		if err != nil {
			return r, err
		}
		r.ValidTo = end
	}
	return r, nil
}

func (b countryBlock) convert() (*types.CountryProfile, error) {
	coeff, err := decimal.NewFromString(b.Coefficient)
	if err != nil {
		return nil, err
	}
	validity, err := parseRange(b.ValidFrom, b.ValidTo)
	if err != nil {
		return nil, err
	}
	country := &types.CountryProfile{
		Code:        b.Code,
		Name:        b.Name,
		RiskGroup:   types.RiskGroup(b.RiskGroup),
		Coefficient: coeff,
		Validity:    validity,
	}
	if b.DefaultDayPremium != nil {
		rate, err := decimal.NewFromString(*b.DefaultDayPremium)
		if err != nil {
			return nil, err
		}
		country.DefaultDayPremium = &rate
	}
	if b.DefaultCurrency != nil {
		country.DefaultCurrency = types.Currency(*b.DefaultCurrency)
	}
	return country, nil
}

func (b levelBlock) convert() (*types.CoverageLevel, error) {
	amount, err := decimal.NewFromString(b.CoverageAmount)
	if err != nil {
		return nil, err
	}
	rate, err := decimal.NewFromString(b.DailyRate)
	if err != nil {
		return nil, err
	}
	validity, err := parseRange(b.ValidFrom, b.ValidTo)
	if err != nil {
		return nil, err
	}
	return &types.CoverageLevel{
		Code:           b.Code,
		CoverageAmount: amount,
		DailyRate:      rate,
		Currency:       types.Currency(b.Currency),
		Validity:       validity,
	}, nil
}

func (b riskBlock) convert() (*types.RiskProfile, error) {
	coeff, err := decimal.NewFromString(b.Coefficient)
	if err != nil {
		return nil, err
	}
	validity, err := parseRange(b.ValidFrom, b.ValidTo)
	if err != nil {
		return nil, err
	}
	risk := &types.RiskProfile{
		Code:        b.Code,
		Name:        b.Name,
		Coefficient: coeff,
		Validity:    validity,
	}
	if b.Mandatory != nil {
		risk.Mandatory = *b.Mandatory
	}
	return risk, nil
}

func (b promoBlock) convert() (*types.PromoCode, error) {
	value, err := decimal.NewFromString(b.Value)
	if err != nil {
		return nil, err
	}
	minPremium, err := decimal.NewFromString(b.MinPremium)
	if err != nil {
		return nil, err
	}
	validity, err := parseRange(b.ValidFrom, b.ValidTo)
	if err != nil {
		return nil, err
	}
	return &types.PromoCode{
		Code:       b.Code,
		Kind:       types.DiscountKind(b.Kind),
		Value:      value,
		MinPremium: minPremium,
		Validity:   validity,
	}, nil
}
