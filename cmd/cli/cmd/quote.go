// Package cmd - the quote command.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Normalno100/InsuranceApplication-sub001/core/types"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/bootstrap"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/config"
	hclstore "github.com/Normalno100/InsuranceApplication-sub001/store/hcl"
)

var (
	quoteRequestFile string
	quoteRefDataDir  string
	quoteDate        string
)

// quoteCmd prices a quote request from a JSON file
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute a quote for a request file",
	Long: `Reads a quote request from a JSON file, runs the validation, pricing,
discount and underwriting stages against HCL reference data, and prints
the outcome as JSON.`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteRequestFile, "request", "", "path to the quote request JSON file")
	quoteCmd.Flags().StringVar(&quoteRefDataDir, "refdata", "", "directory of HCL reference documents (defaults to the configured directory)")
	quoteCmd.Flags().StringVar(&quoteDate, "date", "", "quote date as YYYY-MM-DD (defaults to today)")
	_ = quoteCmd.MarkFlagRequired("request")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if quoteRefDataDir != "" {
		cfg.RefData.Source = "hcl"
		cfg.RefData.Directory = quoteRefDataDir
	}

	data, err := bootstrap.Provider(cfg)
	if err != nil {
		return err
	}
	pipeline, err := bootstrap.Pipeline(cfg, data)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(quoteRequestFile)
	if err != nil {
		return fmt.Errorf("reading request file: %w", err)
	}
	var req types.QuoteRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("parsing request file: %w", err)
	}

	today := time.Now().UTC()
	if quoteDate != "" {
		today, err = time.Parse("2006-01-02", quoteDate)
		if err != nil {
			return fmt.Errorf("parsing quote date: %w", err)
		}
	}

	outcome, err := pipeline.Quote(context.Background(), &req, today)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// refdataCmd groups reference-data commands
var refdataCmd = &cobra.Command{
	Use:   "refdata",
	Short: "Manage reference data",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// refdataValidateCmd loads a directory and reports what it contains
var refdataValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Parse reference documents and report their contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := hclstore.NewLoader().LoadDir(args[0])
		if err != nil {
			return err
		}
		snap := provider.Snapshot()
		fmt.Printf("countries:      %d\n", len(snap.Countries))
		fmt.Printf("coverage tiers: %d\n", len(snap.Levels))
		fmt.Printf("risks:          %d\n", len(snap.Risks))
		fmt.Printf("promo codes:    %d\n", len(snap.Promos))
		fmt.Printf("age brackets:   %d\n", len(snap.AgeBrackets))
		fmt.Printf("duration bands: %d\n", len(snap.DurationBands))
		fmt.Printf("rule params:    %d\n", len(snap.Params))
		return nil
	},
}

func init() {
	refdataCmd.AddCommand(refdataValidateCmd)
	refdataCmd.AddCommand(refdataSeedCmd)
}
