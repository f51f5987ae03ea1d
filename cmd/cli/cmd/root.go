// Package cmd provides the CLI commands for travel-quote.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Normalno100/InsuranceApplication-sub001/internal/config"
	"github.com/Normalno100/InsuranceApplication-sub001/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "travel-quote",
	Short: "Compute travel insurance premium quotes",
	Long: `travel-quote validates a quote request, derives a premium from tabulated
coefficients, applies discounts and runs the underwriting decision.

Examples:
  travel-quote quote --request request.json --refdata ./refdata
  travel-quote refdata validate ./refdata`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.travel-quote.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(refdataCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("travel-quote version 0.1.0")
	},
}
