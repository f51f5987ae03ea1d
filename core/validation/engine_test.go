package validation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
)

var testToday = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

func testProvider() *refdata.MemoryProvider {
	p := refdata.NewMemoryProvider()
	validity := types.DateRange{ValidFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	p.AddCountry(types.CountryProfile{
		Code:        "ES",
		Name:        "Spain",
		RiskGroup:   types.RiskGroupLow,
		Coefficient: decimal.RequireFromString("1.0"),
		Validity:    validity,
	})
	p.AddCoverageLevel(types.CoverageLevel{
		Code:           "STANDARD",
		CoverageAmount: decimal.NewFromInt(50000),
		DailyRate:      decimal.RequireFromString("4.50"),
		Currency:       types.CurrencyEUR,
		Validity:       validity,
	})
	p.AddRisk(types.RiskProfile{
		Code:        "BAGGAGE",
		Name:        "Baggage loss",
		Coefficient: decimal.RequireFromString("0.15"),
		Validity:    validity,
	})
	return p
}

func testContext() *Context {
	return &Context{
		Today:       testToday,
		Data:        testProvider(),
		MaxTripDays: 365,
		MaxAge:      100,
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validRequest() *types.QuoteRequest {
	return &types.QuoteRequest{
		PersonName:        "Ana Petrova",
		BirthDate:         date(1990, 3, 14),
		TripStart:         date(2025, 8, 1),
		TripEnd:           date(2025, 8, 14),
		CountryCode:       "ES",
		CoverageLevelCode: "STANDARD",
	}
}

func TestValidRequestPasses(t *testing.T) {
	outcome, err := DefaultEngine().Validate(context.Background(), testContext(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Valid() {
		t.Fatalf("expected no findings, got %+v", outcome.Entries)
	}
}

func TestMissingRequiredFieldFailsFast(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.QuoteRequest)
		field  string
	}{
		{"missing name", func(r *types.QuoteRequest) { r.PersonName = "  " }, "person_name"},
		{"missing birth date", func(r *types.QuoteRequest) { r.BirthDate = nil }, "birth_date"},
		{"missing trip start", func(r *types.QuoteRequest) { r.TripStart = nil }, "trip_start"},
		{"missing trip end", func(r *types.QuoteRequest) { r.TripEnd = nil }, "trip_end"},
		{"missing country", func(r *types.QuoteRequest) { r.CountryCode = "" }, "country_code"},
		{"no coverage selection", func(r *types.QuoteRequest) { r.CoverageLevelCode = "" }, "coverage_level_code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			outcome, err := DefaultEngine().Validate(context.Background(), testContext(), req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(outcome.Entries) != 1 {
				t.Fatalf("expected exactly one finding, got %d: %+v", len(outcome.Entries), outcome.Entries)
			}
			entry := outcome.Entries[0]
			if entry.Severity != SeverityCritical {
				t.Errorf("expected critical severity, got %s", entry.Severity)
			}
			if entry.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, entry.Field)
			}
		})
	}
}

func TestNonCriticalFindingsAccumulate(t *testing.T) {
	req := validRequest()
	req.CountryCode = "xx"                    // malformed shape AND unknown
	req.CoverageLevelCode = "NO_SUCH_LEVEL"   // unresolvable
	req.SelectedRisks = []string{"NO_RISK"}   // unresolvable
	req.TripStart = date(2025, 8, 14)
	req.TripEnd = date(2025, 8, 1) // end precedes start

	outcome, err := DefaultEngine().Validate(context.Background(), testContext(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.Entries) < 4 {
		t.Fatalf("expected accumulated findings, got %d: %+v", len(outcome.Entries), outcome.Entries)
	}
	for _, entry := range outcome.Entries {
		if entry.Severity == SeverityCritical {
			t.Errorf("unexpected critical finding: %+v", entry)
		}
	}
	if !outcome.Blocking() {
		t.Error("error findings should block")
	}
}

func TestIsoShapeIndependentOfResolution(t *testing.T) {
	tests := []struct {
		code    string
		badIso  bool
		unknown bool
	}{
		{"ES", false, false},
		{"ZZ", false, true},  // well-formed but unknown
		{"es", true, true},   // lower case
		{"ESP", true, true},  // wrong length
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			req := validRequest()
			req.CountryCode = tt.code

			outcome, err := DefaultEngine().Validate(context.Background(), testContext(), req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			hasShape, hasUnknown := false, false
			for _, e := range outcome.Entries {
				if e.Field != "country_code" {
					continue
				}
				if e.Message == "country code must be exactly 2 characters" || e.Message == "country code must be upper-case letters" {
					hasShape = true
				} else {
					hasUnknown = true
				}
			}
			if hasShape != tt.badIso {
				t.Errorf("shape finding = %v, want %v", hasShape, tt.badIso)
			}
			if hasUnknown != tt.unknown {
				t.Errorf("unknown-country finding = %v, want %v", hasUnknown, tt.unknown)
			}
		})
	}
}

func TestBlankRiskElementsSkipped(t *testing.T) {
	req := validRequest()
	req.SelectedRisks = []string{"", "  ", "BAGGAGE"}

	outcome, err := DefaultEngine().Validate(context.Background(), testContext(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Valid() {
		t.Fatalf("blank risk elements should be ignored, got %+v", outcome.Entries)
	}
}

func TestPastTripStartWarnsOnly(t *testing.T) {
	req := validRequest()
	req.TripStart = date(2025, 6, 1)
	req.TripEnd = date(2025, 6, 10)

	outcome, err := DefaultEngine().Validate(context.Background(), testContext(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Blocking() {
		t.Fatalf("a past start date must not block, got %+v", outcome.Entries)
	}
	warnings := outcome.Warnings()
	if len(warnings) != 1 || warnings[0].Field != "trip_start" {
		t.Fatalf("expected a single trip_start warning, got %+v", warnings)
	}
}

func TestLimitsEnforced(t *testing.T) {
	t.Run("trip too long", func(t *testing.T) {
		req := validRequest()
		req.TripEnd = date(2026, 9, 1)

		outcome, err := DefaultEngine().Validate(context.Background(), testContext(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !outcome.Blocking() {
			t.Fatal("over-limit duration should block")
		}
	})

	t.Run("age over limit", func(t *testing.T) {
		req := validRequest()
		req.BirthDate = date(1920, 1, 1)

		outcome, err := DefaultEngine().Validate(context.Background(), testContext(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !outcome.Blocking() {
			t.Fatal("over-limit age should block")
		}
	})
}

func TestRulesRunInDeclaredOrder(t *testing.T) {
	engine := DefaultEngine()
	rules := engine.Rules()
	for i := 1; i < len(rules); i++ {
		if rules[i-1].Order() > rules[i].Order() {
			t.Fatalf("rules out of order: %s (%d) before %s (%d)",
				rules[i-1].Name(), rules[i-1].Order(), rules[i].Name(), rules[i].Order())
		}
	}
}
