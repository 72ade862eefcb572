// Package cmd - estimate command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"construction-cost/core/output"
	"construction-cost/core/session"
	"construction-cost/core/types"
	"construction-cost/core/ui"
	"construction-cost/internal/config"
	"construction-cost/internal/logging"
)

var (
	regionFlag   string
	areaFlag     string
	categoryFlag string
	formatFlag   string
	noColorFlag  bool
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a construction cost range",
	Long: `Estimate the low/high construction cost for a region, floor area,
and building category.

The pricing table is fetched from the configured source. An empty or
invalid area, or an unknown region, produces a neutral placeholder
instead of an error.

Examples:
  construction-cost estimate --region wellington --area 150
  construction-cost estimate --region generic --area 90 --category commercial
  construction-cost estimate --region auckland --area 220 --format json`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&regionFlag, "region", "r", "", "region key (see the regions command)")
	estimateCmd.Flags().StringVarP(&areaFlag, "area", "a", "", "floor area in square metres")
	estimateCmd.Flags().StringVarP(&categoryFlag, "category", "c", string(types.CategoryResidential), "building category (residential, commercial)")
	estimateCmd.Flags().StringVarP(&formatFlag, "format", "f", "cli", "output format (cli, json)")
	estimateCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// estimateJSON is the machine-readable estimate output
type estimateJSON struct {
	Status    string `json:"status"`
	LoadError string `json:"load_error,omitempty"`
	Region    string `json:"region,omitempty"`
	Category  string `json:"category"`
	Area      string `json:"area,omitempty"`
	Estimated bool   `json:"estimated"`
	RateLow   string `json:"rate_low,omitempty"`
	RateHigh  string `json:"rate_high,omitempty"`
	TotalLow  string `json:"total_low,omitempty"`
	TotalHigh string `json:"total_high,omitempty"`
	Rates     string `json:"rates_display"`
	Total     string `json:"total_display"`
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	category := types.Category(categoryFlag)
	if !category.Valid() {
		return fmt.Errorf("unknown category: %s", categoryFlag)
	}

	formatter, err := output.NewFormatter(config.Get().Display)
	if err != nil {
		return err
	}

	logging.Info("loading pricing table")

	sess := session.New(localeTag())
	defer sess.Close()

	sess.Begin(ctx, pricingSource())
	if err := sess.Wait(ctx); err != nil {
		return err
	}

	sess.SetCategory(category)
	sess.SetRegion(types.RegionKey(regionFlag))
	sess.SetArea(areaFlag)

	view := sess.View()

	if formatFlag == "json" {
		return printEstimateJSON(view, formatter)
	}
	printEstimateCLI(view, formatter)
	return nil
}

func printEstimateCLI(view session.View, formatter *output.Formatter) {
	w := ui.NewWriter(os.Stdout, noColorFlag)

	w.Header("Construction Cost Estimate")

	if view.LoadError != "" {
		w.Error("pricing data unavailable: %s", view.LoadError)
		return
	}

	regionTitle := string(view.RegionKey)
	for _, entry := range view.Regions {
		if entry.Key == view.RegionKey {
			regionTitle = entry.Title
		}
	}

	w.Field("Region", orPlaceholder(regionTitle))
	w.Field("Category", string(view.Category))
	w.Field("Area", orPlaceholder(view.AreaText))

	if !view.HaveRates {
		w.Field("Rate range", output.Placeholder)
		w.Field("Total range", output.Placeholder)
		w.Println("")
		w.Warning("select a region and enter a positive area to see an estimate")
		return
	}

	w.Field("Rate range", formatter.Range(view.RatePair.Low, view.RatePair.High)+" per m²")
	if view.HaveCost {
		w.Field("Total range", formatter.TotalRange(view.CostRange))
		w.Println("")
		w.Success("estimate complete")
	} else {
		w.Field("Total range", output.Placeholder)
	}
}

func printEstimateJSON(view session.View, formatter *output.Formatter) error {
	out := estimateJSON{
		Status:    view.Status.String(),
		LoadError: view.LoadError,
		Region:    string(view.RegionKey),
		Category:  string(view.Category),
		Area:      view.AreaText,
		Estimated: view.HaveCost,
		Rates:     output.Placeholder,
		Total:     output.Placeholder,
	}

	if view.HaveRates {
		out.RateLow = view.RatePair.Low.String()
		out.RateHigh = view.RatePair.High.String()
		out.Rates = formatter.Range(view.RatePair.Low, view.RatePair.High)
	}
	if view.HaveCost {
		out.TotalLow = view.CostRange.TotalLow.String()
		out.TotalHigh = view.CostRange.TotalHigh.String()
		out.Total = formatter.TotalRange(view.CostRange)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func orPlaceholder(s string) string {
	if s == "" {
		return output.Placeholder
	}
	return s
}
