package output

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"construction-cost/core/types"
	"construction-cost/internal/config"
)

func mustFormatter(t *testing.T, cfg config.DisplayConfig) *Formatter {
	t.Helper()
	f, err := NewFormatter(cfg)
	if err != nil {
		t.Fatalf("NewFormatter: %v", err)
	}
	return f
}

func TestAmountZeroDecimals(t *testing.T) {
	f := mustFormatter(t, config.DisplayConfig{Locale: "en-US", Currency: "USD", Decimals: 0})

	got := f.Amount(decimal.NewFromInt(375000))
	if got != "$375,000" {
		t.Errorf("expected $375,000, got %q", got)
	}
}

func TestAmountRoundsAtDisplayOnly(t *testing.T) {
	f := mustFormatter(t, config.DisplayConfig{Locale: "en-US", Currency: "USD", Decimals: 0})

	got := f.Amount(decimal.RequireFromString("2500.6"))
	if got != "$2,501" {
		t.Errorf("expected $2,501, got %q", got)
	}
}

func TestAmountTwoDecimals(t *testing.T) {
	f := mustFormatter(t, config.DisplayConfig{Locale: "en-US", Currency: "USD", Decimals: 2})

	got := f.Amount(decimal.NewFromInt(2500))
	if got != "$2,500.00" {
		t.Errorf("expected $2,500.00, got %q", got)
	}
}

func TestAmountConfiguredLocale(t *testing.T) {
	f := mustFormatter(t, config.DisplayConfig{Locale: "en-NZ", Currency: "NZD", Decimals: 0})

	got := f.Amount(decimal.NewFromInt(375000))
	if !strings.Contains(got, "375,000") {
		t.Errorf("expected grouped amount, got %q", got)
	}
}

func TestRanges(t *testing.T) {
	f := mustFormatter(t, config.DisplayConfig{Locale: "en-US", Currency: "USD", Decimals: 0})

	c := types.CostRange{
		RateLow:   decimal.NewFromInt(2500),
		RateHigh:  decimal.NewFromInt(4000),
		TotalLow:  decimal.NewFromInt(375000),
		TotalHigh: decimal.NewFromInt(600000),
	}

	if got := f.RateRange(c); got != "$2,500 – $4,000" {
		t.Errorf("unexpected rate range: %q", got)
	}
	if got := f.TotalRange(c); got != "$375,000 – $600,000" {
		t.Errorf("unexpected total range: %q", got)
	}
}

func TestNewFormatterRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DisplayConfig
	}{
		{name: "bad locale", cfg: config.DisplayConfig{Locale: "not a tag!", Currency: "USD"}},
		{name: "bad currency", cfg: config.DisplayConfig{Locale: "en-US", Currency: "not-a-code"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFormatter(tt.cfg); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
