package pricing

import (
	"testing"

	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

func TestParseValidTable(t *testing.T) {
	payload := []byte(`{
		"wellington": {
			"title": "Wellington",
			"p_commercial_low": 3000,
			"p_commercial_high": 5000,
			"p_residential_low": 2500,
			"p_residential_high": 4000
		},
		"generic": {
			"title": "New Zealand",
			"p_commercial_low": 2800,
			"p_commercial_high": 4800,
			"p_residential_low": 2200,
			"p_residential_high": 3800
		}
	}`)

	table, err := Parse(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(table) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(table))
	}

	wgtn, ok := table["wellington"]
	if !ok {
		t.Fatal("wellington missing from table")
	}
	if wgtn.Title != "Wellington" {
		t.Errorf("expected title Wellington, got %q", wgtn.Title)
	}
	if !wgtn.ResidentialValid || !wgtn.CommercialValid {
		t.Error("expected both category pairs valid")
	}
	if wgtn.ResidentialLow.String() != "2500" || wgtn.ResidentialHigh.String() != "4000" {
		t.Errorf("wrong residential pair: %s-%s", wgtn.ResidentialLow, wgtn.ResidentialHigh)
	}
	if wgtn.CommercialLow.String() != "3000" || wgtn.CommercialHigh.String() != "5000" {
		t.Errorf("wrong commercial pair: %s-%s", wgtn.CommercialLow, wgtn.CommercialHigh)
	}
}

func TestParseMalformedRegions(t *testing.T) {
	tests := []struct {
		name             string
		body             string
		wantTitle        string
		commercialValid  bool
		residentialValid bool
	}{
		{
			name: "missing residential field invalidates only that pair",
			body: `{"r": {"title": "Region", "p_commercial_low": 100, "p_commercial_high": 200, "p_residential_low": 50}}`,
			wantTitle:        "Region",
			commercialValid:  true,
			residentialValid: false,
		},
		{
			name: "negative rate invalidates the pair",
			body: `{"r": {"title": "Region", "p_commercial_low": -1, "p_commercial_high": 200, "p_residential_low": 50, "p_residential_high": 80}}`,
			wantTitle:        "Region",
			commercialValid:  false,
			residentialValid: true,
		},
		{
			name: "non-numeric rate keeps the title, invalidates all pairs",
			body: `{"r": {"title": "Region", "p_commercial_low": "cheap", "p_commercial_high": 200, "p_residential_low": 50, "p_residential_high": 80}}`,
			wantTitle:        "Region",
			commercialValid:  false,
			residentialValid: false,
		},
		{
			name: "missing title falls back to the key",
			body: `{"r": {"p_commercial_low": 100, "p_commercial_high": 200, "p_residential_low": 50, "p_residential_high": 80}}`,
			wantTitle:        "r",
			commercialValid:  true,
			residentialValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse([]byte(tt.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			region, ok := table[types.RegionKey("r")]
			if !ok {
				t.Fatal("region missing from table")
			}
			if region.Title != tt.wantTitle {
				t.Errorf("expected title %q, got %q", tt.wantTitle, region.Title)
			}
			if region.CommercialValid != tt.commercialValid {
				t.Errorf("expected commercial valid=%v, got %v", tt.commercialValid, region.CommercialValid)
			}
			if region.ResidentialValid != tt.residentialValid {
				t.Errorf("expected residential valid=%v, got %v", tt.residentialValid, region.ResidentialValid)
			}
		})
	}
}

func TestParseInvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not JSON", body: `not json at all`},
		{name: "JSON array", body: `[1, 2, 3]`},
		{name: "bare number", body: `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			if err == nil {
				t.Fatal("expected a parsing error")
			}
			if !errors.IsType(err, errors.TypeParsing) {
				t.Errorf("expected TypeParsing, got %v", err)
			}
		})
	}
}

func TestParseEmptyObject(t *testing.T) {
	table, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 0 {
		t.Errorf("expected empty table, got %d regions", len(table))
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusIdle.Terminal() || StatusLoading.Terminal() {
		t.Error("idle and loading must not be terminal")
	}
	if !StatusReady.Terminal() || !StatusFailed.Terminal() {
		t.Error("ready and failed must be terminal")
	}
}
