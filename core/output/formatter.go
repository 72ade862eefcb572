// Package output renders cost values for display.
// Rounding happens here and nowhere else in the engine.
package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"construction-cost/core/types"
	"construction-cost/internal/config"
	"construction-cost/internal/errors"
)

// Placeholder is shown when there is no cost to display yet
const Placeholder = "—"

// Formatter renders amounts in a configured locale and currency
type Formatter struct {
	printer  *message.Printer
	unit     currency.Unit
	decimals int
}

// NewFormatter builds a formatter from display configuration
func NewFormatter(cfg config.DisplayConfig) (*Formatter, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "invalid locale %q", cfg.Locale)
	}

	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "invalid currency %q", cfg.Currency)
	}

	decimals := cfg.Decimals
	if decimals < 0 {
		decimals = 0
	}

	return &Formatter{
		printer:  message.NewPrinter(tag),
		unit:     unit,
		decimals: decimals,
	}, nil
}

// Amount renders one currency amount, rounded to the configured decimals
func (f *Formatter) Amount(d decimal.Decimal) string {
	v, _ := d.Round(int32(f.decimals)).Float64()
	num := number.Decimal(v,
		number.MinFractionDigits(f.decimals),
		number.MaxFractionDigits(f.decimals))
	return f.printer.Sprintf("%v%v", currency.Symbol(f.unit), num)
}

// Range renders a low/high amount pair
func (f *Formatter) Range(low, high decimal.Decimal) string {
	return f.Amount(low) + " – " + f.Amount(high)
}

// RateRange renders the per-area rate bounds of a cost range
func (f *Formatter) RateRange(c types.CostRange) string {
	return f.Range(c.RateLow, c.RateHigh)
}

// TotalRange renders the total cost bounds of a cost range
func (f *Formatter) TotalRange(c types.CostRange) string {
	return f.Range(c.TotalLow, c.TotalHigh)
}
