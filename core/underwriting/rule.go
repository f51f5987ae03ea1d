// Package underwriting provides the risk-acceptance decision engine.
// Rules run in a fixed order after pricing; the first BLOCKING result fixes
// the decision, yet evaluation completes so the trace is always full.
package underwriting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
)

// Severity grades a rule outcome, ordered by decision impact
type Severity string

const (
	// SeverityPass means the rule found nothing
	SeverityPass Severity = "PASS"

	// SeverityWarning is recorded in the trace but never changes the decision
	SeverityWarning Severity = "WARNING"

	// SeverityReviewRequired routes the quote to manual review
	SeverityReviewRequired Severity = "REVIEW_REQUIRED"

	// SeverityBlocking declines the quote
	SeverityBlocking Severity = "BLOCKING"
)

// Decision is the terminal underwriting outcome
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionDeclined Decision = "DECLINED"
	DecisionReview   Decision = "REQUIRES_MANUAL_REVIEW"
)

// Evaluation is one rule's contribution to the trace
type Evaluation struct {
	// RuleName identifies the rule
	RuleName string `json:"rule_name"`

	// Severity grades the outcome
	Severity Severity `json:"severity"`

	// Message explains the outcome; empty on PASS
	Message string `json:"message,omitempty"`
}

// Result is the underwriting outcome with its full trace
type Result struct {
	// Decision is the terminal outcome
	Decision Decision `json:"decision"`

	// Reason is the deciding rule's message; nil when approved
	Reason *string `json:"reason,omitempty"`

	// Evaluations holds every rule outcome in evaluation order
	Evaluations []Evaluation `json:"evaluations"`
}

// Input carries the priced quote into the rules
type Input struct {
	// Request is the validated quote request
	Request *types.QuoteRequest

	// Age is the person's age on the quote date
	Age int

	// Risks are the resolved selected risk profiles
	Risks []types.RiskProfile

	// CoverageAmount is the effective payout ceiling; nil in
	// country-default pricing mode
	CoverageAmount *decimal.Decimal

	// Country is the resolved destination profile
	Country *types.CountryProfile

	// Days is the covered day count
	Days int

	// Today is the quote date
	Today time.Time
}

// HasRisk reports whether a risk code was selected
func (in *Input) HasRisk(code string) bool {
	for _, r := range in.Risks {
		if r.Code == code {
			return true
		}
	}
	return false
}

// Rule is a single underwriting check.
// Thresholds come from reference parameters, never from code, so they can
// change without recompiling rule logic.
type Rule interface {
	// Name returns the rule identifier
	Name() string

	// Description returns a human-readable description
	Description() string

	// Evaluate checks the rule against the priced quote
	Evaluate(ctx context.Context, in *Input, params refdata.Provider) (Evaluation, error)
}
