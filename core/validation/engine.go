// Package validation - ordered rule execution.
package validation

import (
	"context"
	"sort"

	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/errors"
)

// Engine runs a fixed, ordered set of validation rules
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine from the given rules.
// Rules are sorted once by declared order, not per request.
func NewEngine(rules ...Rule) *Engine {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order() < sorted[j].Order()
	})
	return &Engine{rules: sorted}
}

// DefaultEngine builds the standard rule registry
func DefaultEngine() *Engine {
	return NewEngine(
		&requiredNameRule{},
		&requiredBirthDateRule{},
		&requiredTripDatesRule{},
		&requiredCountryRule{},
		&coverageSelectionRule{},
		&isoCodeShapeRule{},
		&countryExistsRule{},
		&coverageLevelExistsRule{},
		&riskCodesResolveRule{},
		&dateOrderRule{},
		&tripDurationRule{},
		&ageLimitRule{},
		&futureTripRule{},
	)
}

// Validate runs the chain against a request.
// A critical rule that fails returns immediately with that single finding.
// Non-critical findings accumulate across the remaining rules.
func (e *Engine) Validate(ctx context.Context, vctx *Context, req *types.QuoteRequest) (*Outcome, error) {
	outcome := &Outcome{}

	for _, rule := range e.rules {
		entries, err := rule.Evaluate(ctx, vctx, req)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeInternal, err, "validation rule %s failed", rule.Name())
		}
		if len(entries) == 0 {
			continue
		}
		if rule.Critical() {
			// Fail fast: only the first critical finding is reported
			return &Outcome{Entries: entries[:1]}, nil
		}
		outcome.Entries = append(outcome.Entries, entries...)
	}

	return outcome, nil
}

// Rules exposes the ordered registry, for trace and introspection surfaces
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}
