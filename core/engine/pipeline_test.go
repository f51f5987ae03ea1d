package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/discount"
	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
	"github.com/Normalno100/InsuranceApplication-sub001/core/underwriting"
	"github.com/Normalno100/InsuranceApplication-sub001/core/validation"
)

var (
	testToday    = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	testValidity = types.DateRange{ValidFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
)

func testProvider() *refdata.MemoryProvider {
	p := refdata.NewMemoryProvider()

	flatRate := decimal.RequireFromString("2.50")
	p.AddCountry(types.CountryProfile{
		Code: "ES", Name: "Spain", RiskGroup: types.RiskGroupLow,
		Coefficient:       decimal.RequireFromString("1.0"),
		DefaultDayPremium: &flatRate,
		DefaultCurrency:   types.CurrencyEUR,
		Validity:          testValidity,
	})
	p.AddCountry(types.CountryProfile{
		Code: "AF", Name: "Afghanistan", RiskGroup: types.RiskGroupVeryHigh,
		Coefficient: decimal.RequireFromString("2.5"),
		Validity:    testValidity,
	})

	p.AddCoverageLevel(types.CoverageLevel{
		Code: "STANDARD", CoverageAmount: decimal.NewFromInt(50000),
		DailyRate: decimal.RequireFromString("4.50"),
		Currency:  types.CurrencyEUR, Validity: testValidity,
	})
	p.AddCoverageLevel(types.CoverageLevel{
		Code: "PREMIUM", CoverageAmount: decimal.NewFromInt(200000),
		DailyRate: decimal.RequireFromString("9.20"),
		Currency:  types.CurrencyEUR, Validity: testValidity,
	})

	p.AddRisk(types.RiskProfile{Code: "MEDICAL", Name: "Medical expenses", Coefficient: decimal.Zero, Mandatory: true, Validity: testValidity})
	p.AddRisk(types.RiskProfile{Code: "EXTREME_SPORT", Name: "Extreme sport", Coefficient: decimal.RequireFromString("0.6"), Validity: testValidity})
	p.AddRisk(types.RiskProfile{Code: "BAGGAGE", Name: "Baggage loss", Coefficient: decimal.RequireFromString("0.15"), Validity: testValidity})

	p.AddPromo(types.PromoCode{
		Code: "SUMMER10", Kind: types.DiscountPercentage,
		Value: decimal.NewFromInt(10), MinPremium: decimal.NewFromInt(150),
		Validity: types.DateRange{
			ValidFrom: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			ValidTo:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		},
	})

	p.SetAgeBrackets([]refdata.AgeBracket{
		{UpToAge: 30, Coefficient: decimal.RequireFromString("1.0")},
		{UpToAge: 60, Coefficient: decimal.RequireFromString("1.1")},
		{UpToAge: 0, Coefficient: decimal.RequireFromString("2.5")},
	})
	p.SetDurationBands([]refdata.DurationBand{
		{MinDays: 1, Coefficient: decimal.RequireFromString("1.0")},
		{MinDays: 30, Coefficient: decimal.RequireFromString("0.95")},
	})

	p.SetParam("risk_age_limit", "max_age", decimal.NewFromInt(70))
	p.SetParam("coverage_age", "min_age", decimal.NewFromInt(65))
	p.SetParam("coverage_age", "review_coverage", decimal.NewFromInt(150000))
	p.SetParam("coverage_age", "decline_coverage", decimal.NewFromInt(300000))
	p.SetParam("trip_risk_group", "max_days_very_high", decimal.NewFromInt(30))
	p.SetParam("senior_traveller", "warn_age", decimal.NewFromInt(65))
	return p
}

func testPipeline() *Pipeline {
	return NewDefault(testProvider(), nil, discount.DefaultSettings(), Limits{MaxTripDays: 365, MaxAge: 100})
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func baseRequest() *types.QuoteRequest {
	return &types.QuoteRequest{
		PersonName:        "Ana Petrova",
		BirthDate:         date(1990, 3, 14),
		TripStart:         date(2025, 8, 1),
		TripEnd:           date(2025, 8, 14),
		CountryCode:       "ES",
		CoverageLevelCode: "STANDARD",
		Currency:          types.CurrencyEUR,
	}
}

func TestApprovedQuoteCompletesAllStages(t *testing.T) {
	outcome, err := testPipeline().Quote(context.Background(), baseRequest(), testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Status != StatusApproved {
		t.Fatalf("status = %s, want APPROVED", outcome.Status)
	}
	if outcome.Pricing == nil || outcome.Discount == nil || outcome.Underwriting == nil {
		t.Fatal("approved outcome must carry all three stage results")
	}
	// 4.50 * 1.1 * 1.0 * 1.0 * 14 = 69.30, no discounts
	if !outcome.Pricing.BasePremium.Equal(decimal.RequireFromString("69.30")) {
		t.Errorf("base premium = %s, want 69.30", outcome.Pricing.BasePremium)
	}
	if !outcome.Discount.FinalPremium.Equal(decimal.RequireFromString("69.30")) {
		t.Errorf("final premium = %s, want 69.30", outcome.Discount.FinalPremium)
	}
	if outcome.Underwriting.Decision != underwriting.DecisionApproved {
		t.Errorf("decision = %s, want APPROVED", outcome.Underwriting.Decision)
	}
}

func TestValidationFailureShortCircuits(t *testing.T) {
	req := baseRequest()
	req.PersonName = ""

	outcome, err := testPipeline().Quote(context.Background(), req, testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Status != StatusValidationFailed {
		t.Fatalf("status = %s, want VALIDATION_FAILED", outcome.Status)
	}
	if outcome.Pricing != nil || outcome.Discount != nil || outcome.Underwriting != nil {
		t.Fatal("no later stage may run after blocking validation")
	}
	if len(outcome.Validation.Entries) != 1 {
		t.Fatalf("expected a single critical finding, got %+v", outcome.Validation.Entries)
	}
	if outcome.Validation.Entries[0].Severity != validation.SeverityCritical {
		t.Errorf("severity = %s, want critical", outcome.Validation.Entries[0].Severity)
	}
}

func TestUnderMinimumPromoSilentlyIgnored(t *testing.T) {
	req := baseRequest()
	req.PromoCode = "SUMMER10" // minimum 150, premium 69.30

	outcome, err := testPipeline().Quote(context.Background(), req, testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusApproved {
		t.Fatalf("status = %s, want APPROVED", outcome.Status)
	}
	if len(outcome.Discount.Applied) != 0 {
		t.Errorf("under-minimum promo must be ignored, got %+v", outcome.Discount.Applied)
	}
	if !outcome.Discount.TotalDiscount.IsZero() {
		t.Errorf("total discount = %s, want 0", outcome.Discount.TotalDiscount)
	}
}

func TestExtremeSportElderlyDeclined(t *testing.T) {
	req := baseRequest()
	req.BirthDate = date(1945, 3, 14) // age 80
	req.SelectedRisks = []string{"EXTREME_SPORT"}

	outcome, err := testPipeline().Quote(context.Background(), req, testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusDeclined {
		t.Fatalf("status = %s, want DECLINED", outcome.Status)
	}
	if outcome.Underwriting.Reason == nil {
		t.Fatal("declined outcome must carry a reason")
	}
}

func TestHighCoverageElderlyRequiresReview(t *testing.T) {
	req := baseRequest()
	req.BirthDate = date(1950, 3, 14) // age 75
	req.CoverageLevelCode = "PREMIUM" // 200,000

	outcome, err := testPipeline().Quote(context.Background(), req, testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusReview {
		t.Fatalf("status = %s, want REQUIRES_MANUAL_REVIEW", outcome.Status)
	}
}

func TestWarningsRideAlongOnSuccess(t *testing.T) {
	req := baseRequest()
	req.TripStart = date(2025, 6, 1)
	req.TripEnd = date(2025, 6, 10)

	outcome, err := testPipeline().Quote(context.Background(), req, testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusApproved {
		t.Fatalf("status = %s, want APPROVED", outcome.Status)
	}
	if len(outcome.Validation.Warnings()) != 1 {
		t.Errorf("expected the past-start warning to ride along, got %+v", outcome.Validation.Entries)
	}
}

func TestIdempotentForIdenticalInputs(t *testing.T) {
	pipeline := testPipeline()

	first, err := pipeline.Quote(context.Background(), baseRequest(), testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := pipeline.Quote(context.Background(), baseRequest(), testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("outcomes differ:\n%s\n%s", a, b)
	}
}

func TestCountryDefaultPricingEndToEnd(t *testing.T) {
	req := baseRequest()
	req.CoverageLevelCode = ""
	req.UseCountryDefault = true

	outcome, err := testPipeline().Quote(context.Background(), req, testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StatusApproved {
		t.Fatalf("status = %s, want APPROVED", outcome.Status)
	}
	if outcome.Pricing.Mode != types.ModeCountryDefault {
		t.Errorf("mode = %s, want COUNTRY_DEFAULT", outcome.Pricing.Mode)
	}
	// 2.50 * 1.1 * 1.0 * 14 = 38.50
	if !outcome.Pricing.BasePremium.Equal(decimal.RequireFromString("38.50")) {
		t.Errorf("base premium = %s, want 38.50", outcome.Pricing.BasePremium)
	}
}

func TestDestinationRiskGroupMonotonic(t *testing.T) {
	// ES is LOW (coefficient 1.0), AF is VERY_HIGH (coefficient 2.5);
	// the riskier destination must not price lower.
	es, err := testPipeline().Quote(context.Background(), baseRequest(), testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := baseRequest()
	req.CountryCode = "AF"
	af, err := testPipeline().Quote(context.Background(), req, testToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if af.Pricing.BasePremium.LessThan(es.Pricing.BasePremium) {
		t.Errorf("VERY_HIGH premium %s below LOW premium %s", af.Pricing.BasePremium, es.Pricing.BasePremium)
	}
}
