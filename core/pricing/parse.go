package pricing

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"construction-cost/core/types"
	"construction-cost/internal/errors"
)

// regionPayload is the wire schema for one region.
// Pointer fields distinguish a missing rate from a zero rate.
type regionPayload struct {
	Title           string           `json:"title"`
	CommercialLow   *decimal.Decimal `json:"p_commercial_low"`
	CommercialHigh  *decimal.Decimal `json:"p_commercial_high"`
	ResidentialLow  *decimal.Decimal `json:"p_residential_low"`
	ResidentialHigh *decimal.Decimal `json:"p_residential_high"`
}

// Parse decodes a pricing payload into an immutable table.
//
// A payload that is not a JSON object of regions is a load failure. A
// region whose rate fields are missing, non-numeric, or negative keeps its
// entry (so it still appears in the catalog) but has the affected category
// pair marked invalid; rate selection then treats it as absent instead of
// letting garbage flow into a displayed total.
func Parse(data []byte) (types.PricingTable, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Parsing("pricing payload is not a region table", err)
	}

	table := make(types.PricingTable, len(raw))
	for key, body := range raw {
		table[types.RegionKey(key)] = parseRegion(key, body)
	}

	return table, nil
}

func parseRegion(key string, body json.RawMessage) types.RegionRates {
	var payload regionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		// Rates are unusable. Salvage the title for the catalog.
		var titleOnly struct {
			Title string `json:"title"`
		}
		_ = json.Unmarshal(body, &titleOnly)
		return types.RegionRates{Title: fallbackTitle(titleOnly.Title, key)}
	}

	rates := types.RegionRates{
		Title: fallbackTitle(payload.Title, key),
	}

	if pairUsable(payload.CommercialLow, payload.CommercialHigh) {
		rates.CommercialLow = *payload.CommercialLow
		rates.CommercialHigh = *payload.CommercialHigh
		rates.CommercialValid = true
	}
	if pairUsable(payload.ResidentialLow, payload.ResidentialHigh) {
		rates.ResidentialLow = *payload.ResidentialLow
		rates.ResidentialHigh = *payload.ResidentialHigh
		rates.ResidentialValid = true
	}

	return rates
}

// pairUsable requires both bounds present and non-negative
func pairUsable(low, high *decimal.Decimal) bool {
	if low == nil || high == nil {
		return false
	}
	return !low.IsNegative() && !high.IsNegative()
}

func fallbackTitle(title, key string) string {
	if title != "" {
		return title
	}
	return key
}

// Load fetches and parses the pricing table in one step
func Load(ctx context.Context, src Source) (types.PricingTable, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
