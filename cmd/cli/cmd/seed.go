// Package cmd - the refdata seed command.
package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Normalno100/InsuranceApplication-sub001/core/refdata"
	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/config"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/errors"
	hclstore "github.com/Normalno100/InsuranceApplication-sub001/store/hcl"
	pgstore "github.com/Normalno100/InsuranceApplication-sub001/store/postgres"
)

var seedDSN string

// refdataSeedCmd loads HCL documents into the postgres reference store
var refdataSeedCmd = &cobra.Command{
	Use:   "seed [dir]",
	Short: "Load reference documents into postgres",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeed,
}

func init() {
	refdataSeedCmd.Flags().StringVar(&seedDSN, "dsn", "", "postgres connection string (defaults to the configured dsn)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	dsn := seedDSN
	if dsn == "" {
		dsn = config.Get().RefData.DSN
	}
	if dsn == "" {
		return errors.Config("seed needs a postgres dsn", nil)
	}

	provider, err := hclstore.NewLoader().LoadDir(args[0])
	if err != nil {
		return err
	}

	store, err := pgstore.Open(dsn)
	if err != nil {
		return err
	}

	return store.Seed(context.Background(), toSeedSet(provider.Snapshot()))
}

func toSeedSet(snap refdata.Export) pgstore.SeedSet {
	var set pgstore.SeedSet

	for _, c := range snap.Countries {
		set.Countries = append(set.Countries, pgstore.CountryRecord{
			Code:              c.Code,
			Name:              c.Name,
			RiskGroup:         string(c.RiskGroup),
			Coefficient:       c.Coefficient,
			DefaultDayPremium: c.DefaultDayPremium,
			DefaultCurrency:   string(c.DefaultCurrency),
			ValidFrom:         c.Validity.ValidFrom,
			ValidTo:           rangeEnd(c.Validity),
		})
	}
	for _, l := range snap.Levels {
		set.Levels = append(set.Levels, pgstore.CoverageLevelRecord{
			Code:           l.Code,
			CoverageAmount: l.CoverageAmount,
			DailyRate:      l.DailyRate,
			Currency:       string(l.Currency),
			ValidFrom:      l.Validity.ValidFrom,
			ValidTo:        rangeEnd(l.Validity),
		})
	}
	for _, r := range snap.Risks {
		set.Risks = append(set.Risks, pgstore.RiskRecord{
			Code:        r.Code,
			Name:        r.Name,
			Coefficient: r.Coefficient,
			Mandatory:   r.Mandatory,
			ValidFrom:   r.Validity.ValidFrom,
			ValidTo:     rangeEnd(r.Validity),
		})
	}
	for _, p := range snap.Promos {
		set.Promos = append(set.Promos, pgstore.PromoRecord{
			Code:       p.Code,
			Kind:       string(p.Kind),
			Value:      p.Value,
			MinPremium: p.MinPremium,
			ValidFrom:  p.Validity.ValidFrom,
			ValidTo:    rangeEnd(p.Validity),
		})
	}
	for _, b := range snap.AgeBrackets {
		set.AgeBrackets = append(set.AgeBrackets, pgstore.AgeBracketRecord{
			UpToAge:     b.UpToAge,
			Coefficient: b.Coefficient,
		})
	}
	for _, b := range snap.DurationBands {
		set.DurationBands = append(set.DurationBands, pgstore.DurationBandRecord{
			MinDays:     b.MinDays,
			Coefficient: b.Coefficient,
		})
	}
	for key, value := range snap.Params {
		rule, name, ok := strings.Cut(key, "/")
		if !ok {
			continue
		}
		set.Params = append(set.Params, pgstore.ParamRecord{
			Rule:  rule,
			Name:  name,
			Value: value,
		})
	}
	return set
}

func rangeEnd(r types.DateRange) *time.Time {
	if r.ValidTo.IsZero() {
		return nil
	}
	end := r.ValidTo
	return &end
}
