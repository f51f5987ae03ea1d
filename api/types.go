// Package api - request and response shapes.
package api

import (
	"time"

	"github.com/Normalno100/InsuranceApplication-sub001/core/engine"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
)

const dateLayout = "2006-01-02"

// QuoteRequest is the transport shape of a quote request.
// Shape tags check formats only; required-field and business checks belong
// to the validation engine so their findings reach the client uniformly.
type QuoteRequest struct {
	PersonName        string   `json:"person_name"`
	BirthDate         string   `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	TripStart         string   `json:"trip_start" validate:"omitempty,datetime=2006-01-02"`
	TripEnd           string   `json:"trip_end" validate:"omitempty,datetime=2006-01-02"`
	CountryCode       string   `json:"country_code"`
	CoverageLevelCode string   `json:"coverage_level_code,omitempty"`
	UseCountryDefault bool     `json:"use_country_default,omitempty"`
	SelectedRisks     []string `json:"selected_risks,omitempty"`
	PromoCode         string   `json:"promo_code,omitempty"`
	PersonCount       int      `json:"person_count,omitempty" validate:"omitempty,min=1"`
	Corporate         bool     `json:"corporate,omitempty"`
	Currency          string   `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
}

// ToDomain converts the transport shape to the pipeline request
func (r *QuoteRequest) ToDomain() (*types.QuoteRequest, error) {
	req := &types.QuoteRequest{
		PersonName:        r.PersonName,
		CountryCode:       r.CountryCode,
		CoverageLevelCode: r.CoverageLevelCode,
		UseCountryDefault: r.UseCountryDefault,
		SelectedRisks:     r.SelectedRisks,
		PromoCode:         r.PromoCode,
		PersonCount:       r.PersonCount,
		Corporate:         r.Corporate,
		Currency:          types.Currency(r.Currency),
	}

	parse := func(value string) (*time.Time, error) {
		if value == "" {
			return nil, nil
		}
		t, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}

	var err error
	if req.BirthDate, err = parse(r.BirthDate); err != nil {
		return nil, err
	}
	if req.TripStart, err = parse(r.TripStart); err != nil {
		return nil, err
	}
	if req.TripEnd, err = parse(r.TripEnd); err != nil {
		return nil, err
	}
	return req, nil
}

// QuoteResponse wraps the pipeline outcome for transport
type QuoteResponse struct {
	// QuoteID identifies this response, not the computation
	QuoteID string `json:"quote_id"`

	// Timestamp is the server time of the response
	Timestamp time.Time `json:"timestamp"`

	// Outcome is the pipeline result
	Outcome *engine.Outcome `json:"outcome"`
}

// ErrorDetail carries a machine-readable error code
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// APIResponse is the envelope for all endpoints
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    any         `json:"data,omitempty"`
	Error   ErrorDetail `json:"error,omitempty"`
}
