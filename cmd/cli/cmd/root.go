// Package cmd provides the CLI commands for construction-cost.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"construction-cost/core/pricing"
	"construction-cost/internal/config"
	"construction-cost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "construction-cost",
	Short: "Estimate construction cost ranges by region and floor area",
	Long: `construction-cost estimates a low/high building cost range from a
regional pricing table, a floor area, and a building category.

Examples:
  construction-cost regions
  construction-cost estimate --region wellington --area 150
  construction-cost estimate --region auckland --area 220 --category commercial --format json`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.construction-cost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
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

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// pricingSource builds the configured pricing source
func pricingSource() pricing.Source {
	cfg := config.Get()
	if cfg.Pricing.SourcePath != "" {
		return &pricing.FileSource{Path: cfg.Pricing.SourcePath}
	}
	timeout := time.Duration(cfg.Pricing.TimeoutSeconds) * time.Second
	return pricing.NewHTTPSource(cfg.Pricing.SourceURL, timeout)
}

// localeTag parses the configured locale, falling back to English
func localeTag() language.Tag {
	tag, err := language.Parse(config.Get().Display.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("construction-cost version 0.1.0")
	},
}

// configCmd shows the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(config.Get(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}
