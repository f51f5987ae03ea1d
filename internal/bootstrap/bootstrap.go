// Package bootstrap wires a quote pipeline from configuration.
package bootstrap

import (
	"github.com/shopspring/decimal"

	"github.com/Normalno100/InsuranceApplication-sub001/core/discount"
	"github.com/Normalno100/InsuranceApplication-sub001/core/engine"
	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/config"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/errors"
	hclstore "github.com/Normalno100/InsuranceApplication-sub001/store/hcl"
	pgstore "github.com/Normalno100/InsuranceApplication-sub001/store/postgres"
)

// Provider builds the reference-data provider selected by configuration
func Provider(cfg *config.Config) (refdata.Provider, error) {
	switch cfg.RefData.Source {
	case "", "hcl":
		return hclstore.NewLoader().LoadDir(cfg.RefData.Directory)
	case "postgres":
		if cfg.RefData.DSN == "" {
			return nil, errors.Config("postgres reference source needs a dsn", nil)
		}
		return pgstore.Open(cfg.RefData.DSN)
	default:
		return nil, errors.Newf(errors.TypeConfig, "unknown reference source: %s", cfg.RefData.Source)
	}
}

// Pipeline builds the standard pipeline from configuration
func Pipeline(cfg *config.Config, data refdata.Provider) (*engine.Pipeline, error) {
	var maxPayout *decimal.Decimal
	if cfg.Pricing.MaxPayoutAmount != "" {
		v, err := decimal.NewFromString(cfg.Pricing.MaxPayoutAmount)
		if err != nil {
			return nil, errors.Config("invalid max payout amount", err)
		}
		maxPayout = &v
	}

	settings, err := discountSettings(cfg)
	if err != nil {
		return nil, err
	}

	limits := engine.Limits{
		MaxTripDays: cfg.Pricing.MaxTripDays,
		MaxAge:      cfg.Pricing.MaxAge,
	}
	return engine.NewDefault(data, maxPayout, settings, limits), nil
}

func discountSettings(cfg *config.Config) (discount.Settings, error) {
	settings := discount.DefaultSettings()
	settings.GroupMinPersons = cfg.Discounts.GroupMinPersons
	settings.BundleMinRisks = cfg.Discounts.BundleMinRisks

	assign := func(dst *decimal.Decimal, raw, field string) error {
		if raw == "" {
			return nil
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return errors.Config("invalid discount setting "+field, err)
		}
		*dst = v
		return nil
	}

	if err := assign(&settings.GroupRatePerPerson, cfg.Discounts.GroupRatePerPerson, "group_rate_per_person"); err != nil {
		return settings, err
	}
	if err := assign(&settings.GroupMaxPercent, cfg.Discounts.GroupMaxPercent, "group_max_percent"); err != nil {
		return settings, err
	}
	if err := assign(&settings.CorporatePercent, cfg.Discounts.CorporatePercent, "corporate_percent"); err != nil {
		return settings, err
	}
	if err := assign(&settings.BundlePercent, cfg.Discounts.BundlePercent, "bundle_percent"); err != nil {
		return settings, err
	}
	return settings, nil
}
