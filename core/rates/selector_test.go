package rates

import (
	"testing"

	"github.com/shopspring/decimal"

	"construction-cost/core/types"
)

func sampleTable() types.PricingTable {
	return types.PricingTable{
		"auckland": {
			Title:            "Auckland",
			CommercialLow:    decimal.NewFromInt(2000),
			CommercialHigh:   decimal.NewFromInt(3500),
			ResidentialLow:   decimal.NewFromInt(1800),
			ResidentialHigh:  decimal.NewFromInt(3000),
			CommercialValid:  true,
			ResidentialValid: true,
		},
	}
}

func TestSelectCategoryMapping(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name     string
		category types.Category
		wantLow  int64
		wantHigh int64
	}{
		{name: "commercial maps to commercial pair", category: types.CategoryCommercial, wantLow: 2000, wantHigh: 3500},
		{name: "residential maps to residential pair", category: types.CategoryResidential, wantLow: 1800, wantHigh: 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, ok := Select(table, "auckland", tt.category)
			if !ok {
				t.Fatal("expected a rate pair")
			}
			if !pair.Low.Equal(decimal.NewFromInt(tt.wantLow)) {
				t.Errorf("expected low %d, got %s", tt.wantLow, pair.Low)
			}
			if !pair.High.Equal(decimal.NewFromInt(tt.wantHigh)) {
				t.Errorf("expected high %d, got %s", tt.wantHigh, pair.High)
			}
		})
	}
}

func TestSelectAbsentCases(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name     string
		table    types.PricingTable
		key      types.RegionKey
		category types.Category
	}{
		{name: "nil table", table: nil, key: "auckland", category: types.CategoryResidential},
		{name: "empty key", table: table, key: "", category: types.CategoryResidential},
		{name: "unknown region", table: table, key: "doesNotExist", category: types.CategoryResidential},
		{name: "unknown category", table: table, key: "auckland", category: types.Category("industrial")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Select(tt.table, tt.key, tt.category); ok {
				t.Error("expected absent result")
			}
		})
	}
}

func TestSelectInvalidPairIsAbsent(t *testing.T) {
	table := types.PricingTable{
		"partial": {
			Title:            "Partial",
			CommercialLow:    decimal.NewFromInt(2000),
			CommercialHigh:   decimal.NewFromInt(3500),
			CommercialValid:  true,
			ResidentialValid: false,
		},
	}

	if _, ok := Select(table, "partial", types.CategoryResidential); ok {
		t.Error("malformed residential data must select as absent")
	}
	if _, ok := Select(table, "partial", types.CategoryCommercial); !ok {
		t.Error("valid commercial pair must still select")
	}
}
