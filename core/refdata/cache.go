// Package refdata - read-through parameter cache.
package refdata

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
)

// cachedParam is a memoized parameter lookup, including misses
type cachedParam struct {
	value decimal.Decimal
	found bool
}

// CachingProvider wraps a Provider with a lazy cache of parameter lookups
// keyed by (rule, name). Entries are written at most once per key and never
// invalidated within the process lifetime, so concurrent readers are safe.
// Record lookups pass through uncached: they are already keyed by quote date.
type CachingProvider struct {
	inner  Provider
	mu     sync.RWMutex
	params map[string]cachedParam
}

// NewCachingProvider wraps a provider with the parameter cache
func NewCachingProvider(inner Provider) *CachingProvider {
	return &CachingProvider{
		inner:  inner,
		params: make(map[string]cachedParam),
	}
}

// Param resolves a rule parameter through the cache
func (p *CachingProvider) Param(ctx context.Context, rule, name string) (decimal.Decimal, bool, error) {
	key := paramKey(rule, name)

	p.mu.RLock()
	entry, ok := p.params[key]
	p.mu.RUnlock()
	if ok {
		return entry.value, entry.found, nil
	}

	value, found, err := p.inner.Param(ctx, rule, name)
	if err != nil {
		// Errors are not cached; the next lookup retries the store
		return decimal.Decimal{}, false, err
	}

	p.mu.Lock()
	// First writer wins; a concurrent lookup computed the same value
	if existing, ok := p.params[key]; ok {
		p.mu.Unlock()
		return existing.value, existing.found, nil
	}
	p.params[key] = cachedParam{value: value, found: found}
	p.mu.Unlock()

	return value, found, nil
}

// CountryByCode passes through to the wrapped provider
func (p *CachingProvider) CountryByCode(ctx context.Context, code string, on time.Time) (*types.CountryProfile, bool, error) {
	return p.inner.CountryByCode(ctx, code, on)
}

// Countries passes through to the wrapped provider
func (p *CachingProvider) Countries(ctx context.Context, on time.Time) ([]types.CountryProfile, error) {
	return p.inner.Countries(ctx, on)
}

// CoverageLevelByCode passes through to the wrapped provider
func (p *CachingProvider) CoverageLevelByCode(ctx context.Context, code string, on time.Time) (*types.CoverageLevel, bool, error) {
	return p.inner.CoverageLevelByCode(ctx, code, on)
}

// RiskByCode passes through to the wrapped provider
func (p *CachingProvider) RiskByCode(ctx context.Context, code string, on time.Time) (*types.RiskProfile, bool, error) {
	return p.inner.RiskByCode(ctx, code, on)
}

// PromoByCode passes through to the wrapped provider
func (p *CachingProvider) PromoByCode(ctx context.Context, code string, on time.Time) (*types.PromoCode, bool, error) {
	return p.inner.PromoByCode(ctx, code, on)
}

// AgeBrackets passes through to the wrapped provider
func (p *CachingProvider) AgeBrackets(ctx context.Context, on time.Time) ([]AgeBracket, error) {
	return p.inner.AgeBrackets(ctx, on)
}

// DurationBands passes through to the wrapped provider
func (p *CachingProvider) DurationBands(ctx context.Context, on time.Time) ([]DurationBand, error) {
	return p.inner.DurationBands(ctx, on)
}
