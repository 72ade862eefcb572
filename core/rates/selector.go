// Package rates resolves the per-area rate pair for a region and category.
package rates

import (
	"construction-cost/core/types"
)

// projection extracts one category's rate pair from a region's rates.
// The bool reports whether the pair is usable.
type projection func(types.RegionRates) (types.RatePair, bool)

// projections is the category dispatch table. Adding a category is a
// table edit, not a new branch.
var projections = map[types.Category]projection{
	types.CategoryResidential: func(r types.RegionRates) (types.RatePair, bool) {
		return types.RatePair{Low: r.ResidentialLow, High: r.ResidentialHigh}, r.ResidentialValid
	},
	types.CategoryCommercial: func(r types.RegionRates) (types.RatePair, bool) {
		return types.RatePair{Low: r.CommercialLow, High: r.CommercialHigh}, r.CommercialValid
	},
}

// Select resolves the rate pair for a region key and category.
//
// Returns false when the table is absent, the key is empty or unknown, the
// category is unknown, or the region's data for that category was
// malformed at load time. Never panics on bad input.
func Select(table types.PricingTable, key types.RegionKey, category types.Category) (types.RatePair, bool) {
	if table == nil || key == "" {
		return types.RatePair{}, false
	}

	region, ok := table[key]
	if !ok {
		return types.RatePair{}, false
	}

	project, ok := projections[category]
	if !ok {
		return types.RatePair{}, false
	}

	return project(region)
}
