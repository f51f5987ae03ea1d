// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Normalno100/InsuranceApplication-sub001/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains premium calculation settings
	Pricing PricingConfig `json:"pricing"`

	// Discounts contains discount engine settings
	Discounts DiscountConfig `json:"discounts"`

	// RefData contains reference-data source settings
	RefData RefDataConfig `json:"refdata"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains premium calculation settings
type PricingConfig struct {
	// DefaultCurrency is used when the request carries no currency code
	DefaultCurrency string `json:"default_currency"`

	// MaxPayoutAmount caps the effective coverage amount; empty disables capping
	MaxPayoutAmount string `json:"max_payout_amount,omitempty"`

	// MaxTripDays is the longest insurable trip
	MaxTripDays int `json:"max_trip_days"`

	// MaxAge is the oldest insurable traveller
	MaxAge int `json:"max_age"`
}

// DiscountConfig contains discount engine settings
type DiscountConfig struct {
	// GroupMinPersons is the person count above which the group discount applies
	GroupMinPersons int `json:"group_min_persons"`

	// GroupRatePerPerson is the per-person percentage added to the group discount
	GroupRatePerPerson string `json:"group_rate_per_person"`

	// GroupMaxPercent caps the group discount percentage
	GroupMaxPercent string `json:"group_max_percent"`

	// CorporatePercent is the corporate discount percentage
	CorporatePercent string `json:"corporate_percent"`

	// BundleMinRisks is the optional-risk count that triggers the bundle discount
	BundleMinRisks int `json:"bundle_min_risks"`

	// BundlePercent is the bundle discount percentage
	BundlePercent string `json:"bundle_percent"`
}

// RefDataConfig contains reference-data source settings
type RefDataConfig struct {
	// Source selects the provider backend (hcl, postgres)
	Source string `json:"source"`

	// Directory holds the HCL reference documents
	Directory string `json:"directory"`

	// DSN is the postgres connection string
	DSN string `json:"dsn,omitempty"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address is the listen address
	Address string `json:"address"`

	// ReadTimeoutSeconds bounds request reads
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	refDir := filepath.Join(homeDir, ".travel-quote", "refdata")

	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			DefaultCurrency: "EUR",
			MaxTripDays:     365,
			MaxAge:          100,
		},
		Discounts: DiscountConfig{
			GroupMinPersons:    5,
			GroupRatePerPerson: "0.5",
			GroupMaxPercent:    "15",
			CorporatePercent:   "10",
			BundleMinRisks:     3,
			BundlePercent:      "5",
		},
		RefData: RefDataConfig{
			Source:    "hcl",
			Directory: refDir,
		},
		Server: ServerConfig{
			Address:                ":8080",
			ReadTimeoutSeconds:     10,
			ShutdownTimeoutSeconds: 15,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
