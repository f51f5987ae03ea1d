// Package refdata - in-memory provider.
package refdata

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
)

// MemoryProvider holds reference data in process memory.
// It backs tests and the CLI, seeded from HCL documents.
type MemoryProvider struct {
	mu            sync.RWMutex
	countries     map[string][]types.CountryProfile
	levels        map[string][]types.CoverageLevel
	risks         map[string][]types.RiskProfile
	promos        map[string][]types.PromoCode
	ageBrackets   []AgeBracket
	durationBands []DurationBand
	params        map[string]decimal.Decimal
}

// NewMemoryProvider creates an empty in-memory provider
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		countries: make(map[string][]types.CountryProfile),
		levels:    make(map[string][]types.CoverageLevel),
		risks:     make(map[string][]types.RiskProfile),
		promos:    make(map[string][]types.PromoCode),
		params:    make(map[string]decimal.Decimal),
	}
}

// AddCountry registers a country profile
func (p *MemoryProvider) AddCountry(c types.CountryProfile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.countries[c.Code] = append(p.countries[c.Code], c)
}

// AddCoverageLevel registers a coverage tier
func (p *MemoryProvider) AddCoverageLevel(l types.CoverageLevel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.levels[l.Code] = append(p.levels[l.Code], l)
}

// AddRisk registers a risk profile
func (p *MemoryProvider) AddRisk(r types.RiskProfile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.risks[r.Code] = append(p.risks[r.Code], r)
}

// AddPromo registers a promo code
func (p *MemoryProvider) AddPromo(c types.PromoCode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.promos[c.Code] = append(p.promos[c.Code], c)
}

// SetAgeBrackets replaces the age coefficient table
func (p *MemoryProvider) SetAgeBrackets(brackets []AgeBracket) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ageBrackets = brackets
}

// SetDurationBands replaces the duration coefficient curve
func (p *MemoryProvider) SetDurationBands(bands []DurationBand) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.durationBands = bands
}

// SetParam registers a rule parameter
func (p *MemoryProvider) SetParam(rule, name string, value decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params[paramKey(rule, name)] = value
}

// CountryByCode resolves a country active on the given date
func (p *MemoryProvider) CountryByCode(ctx context.Context, code string, on time.Time) (*types.CountryProfile, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.countries[code] {
		if p.countries[code][i].Validity.ActiveOn(on) {
			c := p.countries[code][i]
			return &c, true, nil
		}
	}
	return nil, false, nil
}

// Countries lists every country active on the given date, ordered by code
func (p *MemoryProvider) Countries(ctx context.Context, on time.Time) ([]types.CountryProfile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []types.CountryProfile
	for _, records := range p.countries {
		for i := range records {
			if records[i].Validity.ActiveOn(on) {
				out = append(out, records[i])
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// CoverageLevelByCode resolves a coverage tier active on the given date
func (p *MemoryProvider) CoverageLevelByCode(ctx context.Context, code string, on time.Time) (*types.CoverageLevel, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.levels[code] {
		if p.levels[code][i].Validity.ActiveOn(on) {
			l := p.levels[code][i]
			return &l, true, nil
		}
	}
	return nil, false, nil
}

// RiskByCode resolves a risk profile active on the given date
func (p *MemoryProvider) RiskByCode(ctx context.Context, code string, on time.Time) (*types.RiskProfile, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for i := range p.risks[code] {
		if p.risks[code][i].Validity.ActiveOn(on) {
			r := p.risks[code][i]
			return &r, true, nil
		}
	}
	return nil, false, nil
}

// PromoByCode resolves a promo code record; validity is the caller's concern
func (p *MemoryProvider) PromoByCode(ctx context.Context, code string, on time.Time) (*types.PromoCode, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	records := p.promos[code]
	// Prefer a record valid on the quote date, fall back to the latest
	for i := range records {
		if records[i].Validity.ActiveOn(on) {
			c := records[i]
			return &c, true, nil
		}
	}
	if len(records) > 0 {
		c := records[len(records)-1]
		return &c, true, nil
	}
	return nil, false, nil
}

// AgeBrackets returns the age coefficient table
func (p *MemoryProvider) AgeBrackets(ctx context.Context, on time.Time) ([]AgeBracket, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]AgeBracket, len(p.ageBrackets))
	copy(out, p.ageBrackets)
	return out, nil
}

// DurationBands returns the duration coefficient curve
func (p *MemoryProvider) DurationBands(ctx context.Context, on time.Time) ([]DurationBand, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]DurationBand, len(p.durationBands))
	copy(out, p.durationBands)
	return out, nil
}

// Param resolves a rule parameter
func (p *MemoryProvider) Param(ctx context.Context, rule, name string) (decimal.Decimal, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.params[paramKey(rule, name)]
	return v, ok, nil
}

// Export is a full snapshot of the provider's contents, used when seeding
// another store from loaded documents
type Export struct {
	Countries     []types.CountryProfile
	Levels        []types.CoverageLevel
	Risks         []types.RiskProfile
	Promos        []types.PromoCode
	AgeBrackets   []AgeBracket
	DurationBands []DurationBand
	Params        map[string]decimal.Decimal
}

// Snapshot exports every record held by the provider
func (p *MemoryProvider) Snapshot() Export {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := Export{Params: make(map[string]decimal.Decimal, len(p.params))}
	for _, records := range p.countries {
		out.Countries = append(out.Countries, records...)
	}
	for _, records := range p.levels {
		out.Levels = append(out.Levels, records...)
	}
	for _, records := range p.risks {
		out.Risks = append(out.Risks, records...)
	}
	for _, records := range p.promos {
		out.Promos = append(out.Promos, records...)
	}
	out.AgeBrackets = append(out.AgeBrackets, p.ageBrackets...)
	out.DurationBands = append(out.DurationBands, p.durationBands...)
	for k, v := range p.params {
		out.Params[k] = v
	}
	return out
}

func paramKey(rule, name string) string {
	return rule + "/" + name
}
