// Package estimator turns a rate pair and a floor area into a cost range.
package estimator

import (
	"strings"

	"github.com/shopspring/decimal"

	"construction-cost/core/types"
)

// ParseArea parses user-entered area text.
//
// Valid only when the trimmed text parses as a number strictly greater
// than zero. Anything else — empty text, non-numeric text, zero, negative —
// means "no area yet", not an error.
func ParseArea(text string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Decimal{}, false
	}

	area, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if !area.IsPositive() {
		return decimal.Decimal{}, false
	}

	return area, true
}

// Estimate computes the cost range for a rate pair and area text.
//
// Returns false when the pair is absent or the area text is invalid. No
// rounding is applied here; display formatting owns rounding.
func Estimate(pair types.RatePair, haveRates bool, areaText string) (types.CostRange, bool) {
	if !haveRates {
		return types.CostRange{}, false
	}

	area, ok := ParseArea(areaText)
	if !ok {
		return types.CostRange{}, false
	}

	return types.CostRange{
		RateLow:   pair.Low,
		RateHigh:  pair.High,
		TotalLow:  area.Mul(pair.Low),
		TotalHigh: area.Mul(pair.High),
	}, true
}
