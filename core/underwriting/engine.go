// Package underwriting - ordered rule evaluation.
package underwriting

import (
	"context"

	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/errors"
)

// Engine evaluates the configured rules against a priced quote
type Engine struct {
	rules  []Rule
	params refdata.Provider
}

// NewEngine creates an engine over the given rules.
// params resolves rule thresholds; wrap it in a CachingProvider so repeated
// parameter lookups hit the process-wide cache.
func NewEngine(params refdata.Provider, rules ...Rule) *Engine {
	return &Engine{rules: rules, params: params}
}

// DefaultEngine builds the standard rule set
func DefaultEngine(params refdata.Provider) *Engine {
	return NewEngine(params,
		&RiskAgeLimitRule{RiskCode: "EXTREME_SPORT"},
		&CoverageAgeRule{},
		&TripRiskGroupRule{},
		&SeniorTravellerRule{},
	)
}

// Evaluate runs every rule and derives the terminal decision.
//
// The first BLOCKING outcome fixes the decision as DECLINED, but later
// rules still run so the trace is complete. Otherwise the first
// REVIEW_REQUIRED outcome routes to manual review. Warnings are trace-only.
func (e *Engine) Evaluate(ctx context.Context, in *Input) (*Result, error) {
	result := &Result{
		Decision:    DecisionApproved,
		Evaluations: make([]Evaluation, 0, len(e.rules)),
	}
	var reason string

	for _, rule := range e.rules {
		eval, err := rule.Evaluate(ctx, in, e.params)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeUnderwriting, err, "rule %s failed", rule.Name())
		}
		result.Evaluations = append(result.Evaluations, eval)

		switch eval.Severity {
		case SeverityBlocking:
			if result.Decision != DecisionDeclined {
				result.Decision = DecisionDeclined
				reason = eval.Message
			}
		case SeverityReviewRequired:
			if result.Decision == DecisionApproved {
				result.Decision = DecisionReview
				reason = eval.Message
			}
		}
	}

	if result.Decision != DecisionApproved {
		result.Reason = &reason
	}
	return result, nil
}

// Rules exposes the configured rule set
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}
