// Package cmd - regions command
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"construction-cost/core/catalog"
	"construction-cost/core/pricing"
	"construction-cost/core/ui"
)

var regionsFormat string

// regionsCmd lists the selectable regions
var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the selectable pricing regions",
	Long: `List the regions available in the pricing table, in display order:
alphabetical by title, with the nationwide fallback last.`,
	RunE: runRegions,
}

func init() {
	regionsCmd.Flags().StringVarP(&regionsFormat, "format", "f", "cli", "output format (cli, json)")
}

func runRegions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	table, err := pricing.Load(ctx, pricingSource())
	if err != nil {
		return err
	}

	entries := catalog.List(table, localeTag())

	if regionsFormat == "json" {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	w := ui.NewWriter(os.Stdout, false)
	w.Header("Regions")
	if len(entries) == 0 {
		w.Warning("pricing table has no regions")
		return nil
	}
	for _, entry := range entries {
		w.Field(string(entry.Key), entry.Title)
	}
	return nil
}
