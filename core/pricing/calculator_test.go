package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
)

var (
	testToday    = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	testValidity = types.DateRange{ValidFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
)

func testProvider() *refdata.MemoryProvider {
	p := refdata.NewMemoryProvider()
	p.SetAgeBrackets([]refdata.AgeBracket{
		{UpToAge: 30, Coefficient: decimal.RequireFromString("1.0")},
		{UpToAge: 60, Coefficient: decimal.RequireFromString("1.1")},
		{UpToAge: 0, Coefficient: decimal.RequireFromString("2.5")},
	})
	p.SetDurationBands([]refdata.DurationBand{
		{MinDays: 1, Coefficient: decimal.RequireFromString("1.0")},
		{MinDays: 30, Coefficient: decimal.RequireFromString("0.95")},
		{MinDays: 90, Coefficient: decimal.RequireFromString("0.9")},
	})
	return p
}

func spain() *types.CountryProfile {
	rate := decimal.RequireFromString("2.50")
	return &types.CountryProfile{
		Code:              "ES",
		Name:              "Spain",
		RiskGroup:         types.RiskGroupLow,
		Coefficient:       decimal.RequireFromString("1.0"),
		DefaultDayPremium: &rate,
		DefaultCurrency:   types.CurrencyEUR,
		Validity:          testValidity,
	}
}

func standardLevel() *types.CoverageLevel {
	return &types.CoverageLevel{
		Code:           "STANDARD",
		CoverageAmount: decimal.NewFromInt(50000),
		DailyRate:      decimal.RequireFromString("4.50"),
		Currency:       types.CurrencyEUR,
		Validity:       testValidity,
	}
}

func testInput(level *types.CoverageLevel, age int) *Input {
	birth := time.Date(testToday.Year()-age, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC)
	req := &types.QuoteRequest{
		PersonName:  "Ana Petrova",
		BirthDate:   &birth,
		TripStart:   &start,
		TripEnd:     &end,
		CountryCode: "ES",
		Currency:    types.CurrencyEUR,
	}
	if level != nil {
		req.CoverageLevelCode = level.Code
	} else {
		req.UseCountryDefault = true
	}
	return &Input{
		Request: req,
		Country: spain(),
		Level:   level,
		Age:     age,
		Today:   testToday,
	}
}

func TestMedicalLevelScenario(t *testing.T) {
	calc := NewCalculator(testProvider(), nil)
	result, err := calc.Calculate(context.Background(), testInput(standardLevel(), 35))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Mode != types.ModeMedicalLevel {
		t.Errorf("mode = %s, want MEDICAL_LEVEL", result.Mode)
	}
	if result.Days != 14 {
		t.Errorf("days = %d, want 14", result.Days)
	}
	// 4.50 * 1.1 (age) * 1.0 (country) * 1.0 (duration) * 14 = 69.30
	want := decimal.RequireFromString("69.30")
	if !result.BasePremium.Equal(want) {
		t.Errorf("premium = %s, want %s", result.BasePremium, want)
	}
	if result.CountryCoefficient == nil {
		t.Error("country coefficient should be present in MEDICAL_LEVEL mode")
	}
	if result.CoverageAmount == nil || !result.CoverageAmount.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("coverage amount = %v, want 50000", result.CoverageAmount)
	}
}

func TestCountryDefaultModeOmitsLevelFields(t *testing.T) {
	calc := NewCalculator(testProvider(), nil)
	result, err := calc.Calculate(context.Background(), testInput(nil, 35))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Mode != types.ModeCountryDefault {
		t.Errorf("mode = %s, want COUNTRY_DEFAULT", result.Mode)
	}
	// 2.50 * 1.1 * 1.0 (duration) * 14; the country coefficient is embedded
	// in the default rate and must not be applied again
	want := decimal.RequireFromString("38.50")
	if !result.BasePremium.Equal(want) {
		t.Errorf("premium = %s, want %s", result.BasePremium, want)
	}
	if result.CountryCoefficient != nil {
		t.Error("country coefficient must be absent in COUNTRY_DEFAULT mode")
	}
	if result.CoverageAmount != nil || result.CoverageLevelCode != "" {
		t.Error("coverage fields must be absent in COUNTRY_DEFAULT mode")
	}
	if result.PayoutLimitApplied {
		t.Error("payout limit must never apply in COUNTRY_DEFAULT mode")
	}
}

func TestCountryCoefficientAppliedOnce(t *testing.T) {
	// A country coefficient above 1 must scale MEDICAL_LEVEL pricing but
	// leave COUNTRY_DEFAULT pricing untouched.
	risky := spain()
	risky.Coefficient = decimal.RequireFromString("2.0")

	calc := NewCalculator(testProvider(), nil)

	medical := testInput(standardLevel(), 35)
	medical.Country = risky
	withCoeff, err := calc.Calculate(context.Background(), medical)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base, err := calc.Calculate(context.Background(), testInput(standardLevel(), 35))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !withCoeff.BasePremium.Equal(base.BasePremium.Mul(decimal.NewFromInt(2))) {
		t.Errorf("MEDICAL_LEVEL premium %s should be double %s", withCoeff.BasePremium, base.BasePremium)
	}

	flat := testInput(nil, 35)
	flat.Country = risky
	flatResult, err := calc.Calculate(context.Background(), flat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flatBase, err := calc.Calculate(context.Background(), testInput(nil, 35))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !flatResult.BasePremium.Equal(flatBase.BasePremium) {
		t.Errorf("COUNTRY_DEFAULT premium %s must ignore the coefficient (was %s)", flatResult.BasePremium, flatBase.BasePremium)
	}
}

func TestRiskBreakdown(t *testing.T) {
	in := testInput(standardLevel(), 35)
	in.Risks = []types.RiskProfile{
		{Code: "MEDICAL", Name: "Medical expenses", Coefficient: decimal.Zero, Mandatory: true, Validity: testValidity},
		{Code: "BAGGAGE", Name: "Baggage loss", Coefficient: decimal.RequireFromString("0.15"), Validity: testValidity},
		{Code: "EXTREME_SPORT", Name: "Extreme sport", Coefficient: decimal.RequireFromString("0.6"), Validity: testValidity},
	}

	calc := NewCalculator(testProvider(), nil)
	result, err := calc.Calculate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.RiskBreakdown) != 2 {
		t.Fatalf("mandatory risk must not appear as an add-on, got %d entries", len(result.RiskBreakdown))
	}
	if !result.RiskCoefficient.Equal(decimal.RequireFromString("0.75")) {
		t.Errorf("risk coefficient = %s, want 0.75", result.RiskCoefficient)
	}
	// 69.30 * (1 + 0.75) = 121.275 -> 121.28 half-up
	want := decimal.RequireFromString("121.28")
	if !result.BasePremium.Equal(want) {
		t.Errorf("premium = %s, want %s", result.BasePremium, want)
	}
}

func TestPayoutLimitCapping(t *testing.T) {
	limit := decimal.NewFromInt(25000)

	t.Run("medical level capped", func(t *testing.T) {
		calc := NewCalculator(testProvider(), &limit)
		capped, err := calc.Calculate(context.Background(), testInput(standardLevel(), 35))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		uncapped, err := NewCalculator(testProvider(), nil).Calculate(context.Background(), testInput(standardLevel(), 35))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !capped.PayoutLimitApplied {
			t.Fatal("payout limit should be applied")
		}
		if capped.PayoutLimit == nil || !capped.PayoutLimit.Equal(limit) {
			t.Errorf("payout limit = %v, want %s", capped.PayoutLimit, limit)
		}
		if !capped.CoverageAmount.Equal(limit) {
			t.Errorf("effective coverage = %s, want %s", capped.CoverageAmount, limit)
		}
		if !capped.BasePremium.LessThan(uncapped.BasePremium) {
			t.Errorf("capped premium %s should be below uncapped %s", capped.BasePremium, uncapped.BasePremium)
		}
		// 50000 -> 25000 halves the premium
		if !capped.BasePremium.Equal(types.RoundMoney(uncapped.BasePremium.Div(decimal.NewFromInt(2)))) {
			t.Errorf("capped premium %s should be half of %s", capped.BasePremium, uncapped.BasePremium)
		}
	})

	t.Run("limit above coverage is inert", func(t *testing.T) {
		high := decimal.NewFromInt(900000)
		calc := NewCalculator(testProvider(), &high)
		result, err := calc.Calculate(context.Background(), testInput(standardLevel(), 35))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.PayoutLimitApplied || result.PayoutLimit != nil {
			t.Error("limit above the coverage amount must not apply")
		}
	})

	t.Run("country default unaffected", func(t *testing.T) {
		calc := NewCalculator(testProvider(), &limit)
		result, err := calc.Calculate(context.Background(), testInput(nil, 35))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.PayoutLimitApplied || result.PayoutLimit != nil {
			t.Error("payout limit must never apply in COUNTRY_DEFAULT mode")
		}
	})
}

func TestSameDayTripCountsOneDay(t *testing.T) {
	in := testInput(standardLevel(), 35)
	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	in.Request.TripStart = &day
	in.Request.TripEnd = &day

	result, err := NewCalculator(testProvider(), nil).Calculate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Days != 1 {
		t.Errorf("same-day trip days = %d, want 1", result.Days)
	}
}

func TestPremiumRoundedToTwoDigits(t *testing.T) {
	result, err := NewCalculator(testProvider(), nil).Calculate(context.Background(), testInput(standardLevel(), 72))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BasePremium.Exponent() < -2 {
		t.Errorf("premium %s carries more than 2 fractional digits", result.BasePremium)
	}
	if result.BasePremium.IsNegative() {
		t.Errorf("premium %s is negative", result.BasePremium)
	}
}

func TestAgeCoefficientMonotonicBrackets(t *testing.T) {
	calc := NewCalculator(testProvider(), nil)
	prev := decimal.Zero
	for _, age := range []int{20, 45, 75} {
		result, err := calc.Calculate(context.Background(), testInput(standardLevel(), age))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.BasePremium.LessThan(prev) {
			t.Fatalf("premium decreased with age: %s after %s", result.BasePremium, prev)
		}
		prev = result.BasePremium
	}
}
