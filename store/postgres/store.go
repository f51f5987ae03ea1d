// Package postgres - reference-data provider over GORM.
package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/errors"
)

// Store resolves reference records from postgres.
// It performs point lookups only; the pipeline never retries here.
type Store struct {
	db *gorm.DB
}

// Open connects to postgres and migrates the reference tables
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Storage("connecting to postgres", err)
	}
	if err := db.AutoMigrate(
		&CountryRecord{},
		&CoverageLevelRecord{},
		&RiskRecord{},
		&PromoRecord{},
		&AgeBracketRecord{},
		&DurationBandRecord{},
		&ParamRecord{},
	); err != nil {
		return nil, errors.Storage("migrating reference tables", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing GORM handle
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// activeOn scopes a query to records valid on the given date
func activeOn(on time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("valid_from <= ? AND (valid_to IS NULL OR valid_to >= ?)", on, on)
	}
}

// CountryByCode resolves a country active on the given date
func (s *Store) CountryByCode(ctx context.Context, code string, on time.Time) (*types.CountryProfile, bool, error) {
	var rec CountryRecord
	err := s.db.WithContext(ctx).Scopes(activeOn(on)).Where("code = ?", code).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Storage("querying countries", err)
	}

	country := &types.CountryProfile{
		Code:              rec.Code,
		Name:              rec.Name,
		RiskGroup:         types.RiskGroup(rec.RiskGroup),
		Coefficient:       rec.Coefficient,
		DefaultDayPremium: rec.DefaultDayPremium,
		DefaultCurrency:   types.Currency(rec.DefaultCurrency),
		Validity:          recordRange(rec.ValidFrom, rec.ValidTo),
	}
	return country, true, nil
}

// Countries lists every country active on the given date, ordered by code
func (s *Store) Countries(ctx context.Context, on time.Time) ([]types.CountryProfile, error) {
	var recs []CountryRecord
	if err := s.db.WithContext(ctx).Scopes(activeOn(on)).Order("code ASC").Find(&recs).Error; err != nil {
		return nil, errors.Storage("listing countries", err)
	}
	countries := make([]types.CountryProfile, 0, len(recs))
	for _, rec := range recs {
		countries = append(countries, types.CountryProfile{
			Code:              rec.Code,
			Name:              rec.Name,
			RiskGroup:         types.RiskGroup(rec.RiskGroup),
			Coefficient:       rec.Coefficient,
			DefaultDayPremium: rec.DefaultDayPremium,
			DefaultCurrency:   types.Currency(rec.DefaultCurrency),
			Validity:          recordRange(rec.ValidFrom, rec.ValidTo),
		})
	}
	return countries, nil
}

// CoverageLevelByCode resolves a coverage tier active on the given date
func (s *Store) CoverageLevelByCode(ctx context.Context, code string, on time.Time) (*types.CoverageLevel, bool, error) {
	var rec CoverageLevelRecord
	err := s.db.WithContext(ctx).Scopes(activeOn(on)).Where("code = ?", code).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Storage("querying coverage levels", err)
	}

	level := &types.CoverageLevel{
		Code:           rec.Code,
		CoverageAmount: rec.CoverageAmount,
		DailyRate:      rec.DailyRate,
		Currency:       types.Currency(rec.Currency),
		Validity:       recordRange(rec.ValidFrom, rec.ValidTo),
	}
	return level, true, nil
}

// RiskByCode resolves a risk profile active on the given date
func (s *Store) RiskByCode(ctx context.Context, code string, on time.Time) (*types.RiskProfile, bool, error) {
	var rec RiskRecord
	err := s.db.WithContext(ctx).Scopes(activeOn(on)).Where("code = ?", code).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Storage("querying risks", err)
	}

	risk := &types.RiskProfile{
		Code:        rec.Code,
		Name:        rec.Name,
		Coefficient: rec.Coefficient,
		Mandatory:   rec.Mandatory,
		Validity:    recordRange(rec.ValidFrom, rec.ValidTo),
	}
	return risk, true, nil
}

// PromoByCode resolves a promo code record; the discount engine checks
// validity itself, so the latest record is returned when none is active
func (s *Store) PromoByCode(ctx context.Context, code string, on time.Time) (*types.PromoCode, bool, error) {
	var rec PromoRecord
	err := s.db.WithContext(ctx).Scopes(activeOn(on)).Where("code = ?", code).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		err = s.db.WithContext(ctx).Where("code = ?", code).Order("valid_from DESC").First(&rec).Error
	}
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Storage("querying promo codes", err)
	}

	promo := &types.PromoCode{
		Code:       rec.Code,
		Kind:       types.DiscountKind(rec.Kind),
		Value:      rec.Value,
		MinPremium: rec.MinPremium,
		Validity:   recordRange(rec.ValidFrom, rec.ValidTo),
	}
	return promo, true, nil
}

// AgeBrackets returns the age coefficient table
func (s *Store) AgeBrackets(ctx context.Context, on time.Time) ([]refdata.AgeBracket, error) {
	var recs []AgeBracketRecord
	if err := s.db.WithContext(ctx).Order("up_to_age ASC").Find(&recs).Error; err != nil {
		return nil, errors.Storage("querying age brackets", err)
	}
	brackets := make([]refdata.AgeBracket, 0, len(recs))
	for _, rec := range recs {
		brackets = append(brackets, refdata.AgeBracket{UpToAge: rec.UpToAge, Coefficient: rec.Coefficient})
	}
	return brackets, nil
}

// DurationBands returns the duration coefficient curve
func (s *Store) DurationBands(ctx context.Context, on time.Time) ([]refdata.DurationBand, error) {
	var recs []DurationBandRecord
	if err := s.db.WithContext(ctx).Order("min_days ASC").Find(&recs).Error; err != nil {
		return nil, errors.Storage("querying duration bands", err)
	}
	bands := make([]refdata.DurationBand, 0, len(recs))
	for _, rec := range recs {
		bands = append(bands, refdata.DurationBand{MinDays: rec.MinDays, Coefficient: rec.Coefficient})
	}
	return bands, nil
}

// Param resolves a rule parameter
func (s *Store) Param(ctx context.Context, rule, name string) (decimal.Decimal, bool, error) {
	var rec ParamRecord
	err := s.db.WithContext(ctx).Where("rule = ? AND name = ?", rule, name).First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return decimal.Decimal{}, false, nil
	}
	if err != nil {
		return decimal.Decimal{}, false, errors.Storage("querying rule params", err)
	}
	return rec.Value, true, nil
}

// Seed replaces the reference tables with the contents of a memory provider
// snapshot, for bootstrapping a fresh database from HCL documents
func (s *Store) Seed(ctx context.Context, records SeedSet) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"countries", "coverage_levels", "risks", "promo_codes", "age_brackets", "duration_bands", "rule_params"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		if len(records.Countries) > 0 {
			if err := tx.Create(&records.Countries).Error; err != nil {
				return err
			}
		}
		if len(records.Levels) > 0 {
			if err := tx.Create(&records.Levels).Error; err != nil {
				return err
			}
		}
		if len(records.Risks) > 0 {
			if err := tx.Create(&records.Risks).Error; err != nil {
				return err
			}
		}
		if len(records.Promos) > 0 {
			if err := tx.Create(&records.Promos).Error; err != nil {
				return err
			}
		}
		if len(records.AgeBrackets) > 0 {
			if err := tx.Create(&records.AgeBrackets).Error; err != nil {
				return err
			}
		}
		if len(records.DurationBands) > 0 {
			if err := tx.Create(&records.DurationBands).Error; err != nil {
				return err
			}
		}
		if len(records.Params) > 0 {
			if err := tx.Create(&records.Params).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SeedSet groups records for a full reference reload
type SeedSet struct {
	Countries     []CountryRecord
	Levels        []CoverageLevelRecord
	Risks         []RiskRecord
	Promos        []PromoRecord
	AgeBrackets   []AgeBracketRecord
	DurationBands []DurationBandRecord
	Params        []ParamRecord
}

func recordRange(from time.Time, to *time.Time) types.DateRange {
	r := types.DateRange{ValidFrom: from}
	if to != nil {
		r.ValidTo = *to
	}
	return r
}
