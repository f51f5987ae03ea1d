// Package postgres provides a GORM-backed reference-data provider.
package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountryRecord is the countries table
type CountryRecord struct {
	ID                uint             `gorm:"primaryKey"`
	Code              string           `gorm:"size:2;index:idx_countries_code"`
	Name              string           `gorm:"size:128"`
	RiskGroup         string           `gorm:"size:16"`
	Coefficient       decimal.Decimal  `gorm:"type:numeric(12,4)"`
	DefaultDayPremium *decimal.Decimal `gorm:"type:numeric(12,2)"`
	DefaultCurrency   string           `gorm:"size:3"`
	ValidFrom         time.Time
	ValidTo           *time.Time
}

// TableName overrides the table name
func (CountryRecord) TableName() string { return "countries" }

// CoverageLevelRecord is the coverage_levels table
type CoverageLevelRecord struct {
	ID             uint            `gorm:"primaryKey"`
	Code           string          `gorm:"size:32;index:idx_coverage_levels_code"`
	CoverageAmount decimal.Decimal `gorm:"type:numeric(14,2)"`
	DailyRate      decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency       string          `gorm:"size:3"`
	ValidFrom      time.Time
	ValidTo        *time.Time
}

// TableName overrides the table name
func (CoverageLevelRecord) TableName() string { return "coverage_levels" }

// RiskRecord is the risks table
type RiskRecord struct {
	ID          uint            `gorm:"primaryKey"`
	Code        string          `gorm:"size:32;index:idx_risks_code"`
	Name        string          `gorm:"size:128"`
	Coefficient decimal.Decimal `gorm:"type:numeric(12,4)"`
	Mandatory   bool
	ValidFrom   time.Time
	ValidTo     *time.Time
}

// TableName overrides the table name
func (RiskRecord) TableName() string { return "risks" }

// PromoRecord is the promo_codes table
type PromoRecord struct {
	ID         uint            `gorm:"primaryKey"`
	Code       string          `gorm:"size:32;index:idx_promo_codes_code"`
	Kind       string          `gorm:"size:16"`
	Value      decimal.Decimal `gorm:"type:numeric(12,2)"`
	MinPremium decimal.Decimal `gorm:"type:numeric(12,2)"`
	ValidFrom  time.Time
	ValidTo    *time.Time
}

// TableName overrides the table name
func (PromoRecord) TableName() string { return "promo_codes" }

// AgeBracketRecord is the age_brackets table
type AgeBracketRecord struct {
	ID          uint            `gorm:"primaryKey"`
	UpToAge     int             `gorm:"index:idx_age_brackets_up_to"`
	Coefficient decimal.Decimal `gorm:"type:numeric(12,4)"`
}

// TableName overrides the table name
func (AgeBracketRecord) TableName() string { return "age_brackets" }

// DurationBandRecord is the duration_bands table
type DurationBandRecord struct {
	ID          uint            `gorm:"primaryKey"`
	MinDays     int             `gorm:"index:idx_duration_bands_min_days"`
	Coefficient decimal.Decimal `gorm:"type:numeric(12,4)"`
}

// TableName overrides the table name
func (DurationBandRecord) TableName() string { return "duration_bands" }

// ParamRecord is the rule_params table
type ParamRecord struct {
	ID    uint            `gorm:"primaryKey"`
	Rule  string          `gorm:"size:64;uniqueIndex:idx_rule_params_key"`
	Name  string          `gorm:"size:64;uniqueIndex:idx_rule_params_key"`
	Value decimal.Decimal `gorm:"type:numeric(14,4)"`
}

// TableName overrides the table name
func (ParamRecord) TableName() string { return "rule_params" }
