// Package validation provides the quote request validation engine.
// Rules form an explicit ordered registry; a critical rule that fails stops
// the chain, non-critical failures accumulate, warnings never block.
package validation

import (
	"context"
	"time"

	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
)

// Severity grades a validation entry
type Severity string

const (
	// SeverityCritical is a missing required field; halts the chain
	SeverityCritical Severity = "critical"

	// SeverityError is a malformed or unresolvable value; accumulates
	SeverityError Severity = "error"

	// SeverityWarning is advisory only; never blocks
	SeverityWarning Severity = "warning"
)

// Entry is a single validation finding
type Entry struct {
	// Field names the offending request field
	Field string `json:"field"`

	// Message describes the finding
	Message string `json:"message"`

	// Severity grades the finding
	Severity Severity `json:"severity"`
}

// Outcome is the ordered list of findings; empty means valid
type Outcome struct {
	// Entries holds findings in rule order
	Entries []Entry `json:"entries"`
}

// Valid reports whether no findings were recorded
func (o *Outcome) Valid() bool {
	return len(o.Entries) == 0
}

// Blocking reports whether any critical or error finding is present.
// Warnings alone never block the pipeline.
func (o *Outcome) Blocking() bool {
	for _, e := range o.Entries {
		if e.Severity == SeverityCritical || e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns the advisory findings only
func (o *Outcome) Warnings() []Entry {
	var out []Entry
	for _, e := range o.Entries {
		if e.Severity == SeverityWarning {
			out = append(out, e)
		}
	}
	return out
}

// Context carries the quote date, reference data and limits into rules
type Context struct {
	// Today is the quote date; the only time dependence in the pipeline
	Today time.Time

	// Data resolves reference records
	Data refdata.Provider

	// MaxTripDays is the longest insurable trip
	MaxTripDays int

	// MaxAge is the oldest insurable traveller
	MaxAge int
}

// Rule is a single validation check
type Rule interface {
	// Name returns the rule identifier
	Name() string

	// Field returns the request field the rule targets
	Field() string

	// Order returns the evaluation position; rules run ascending
	Order() int

	// Critical marks the rule as chain-stopping on failure
	Critical() bool

	// Evaluate checks the request; returned entries are appended to the
	// outcome. A non-nil error means a reference store failure, not a
	// validation finding.
	Evaluate(ctx context.Context, vctx *Context, req *types.QuoteRequest) ([]Entry, error)
}
