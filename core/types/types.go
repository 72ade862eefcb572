// Package types defines the core domain types for construction cost estimation.
package types

import (
	"github.com/shopspring/decimal"
)

// FallbackRegionKey is the reserved key for the nationwide fallback region.
// It is always offered last in region listings when present.
const FallbackRegionKey = "generic"

// RegionKey identifies a pricing region within a table
type RegionKey string

// Category selects which rate pair of a region applies
type Category string

const (
	// CategoryResidential selects the residential rate pair
	CategoryResidential Category = "residential"

	// CategoryCommercial selects the commercial rate pair
	CategoryCommercial Category = "commercial"
)

// Valid reports whether the category is a known value
func (c Category) Valid() bool {
	return c == CategoryResidential || c == CategoryCommercial
}

// RegionRates holds the per-area rate bounds for one region.
// Rates are currency-per-area. A category pair may be marked invalid when
// the source data for it was missing or malformed; selection treats an
// invalid pair as absent rather than computing with garbage.
type RegionRates struct {
	// Title is the display name of the region
	Title string

	// CommercialLow is the lower commercial rate bound
	CommercialLow decimal.Decimal

	// CommercialHigh is the upper commercial rate bound
	CommercialHigh decimal.Decimal

	// ResidentialLow is the lower residential rate bound
	ResidentialLow decimal.Decimal

	// ResidentialHigh is the upper residential rate bound
	ResidentialHigh decimal.Decimal

	// CommercialValid marks the commercial pair as usable
	CommercialValid bool

	// ResidentialValid marks the residential pair as usable
	ResidentialValid bool
}

// PricingTable maps region keys to their rates.
// Immutable after load: never mutated, only replaced wholesale.
type PricingTable map[RegionKey]RegionRates

// Has reports whether the table contains the given key
func (t PricingTable) Has(key RegionKey) bool {
	_, ok := t[key]
	return ok
}

// RatePair is the resolved low/high per-area rate for a region+category
type RatePair struct {
	Low  decimal.Decimal
	High decimal.Decimal
}

// CostRange is the derived low/high total cost for an area at a rate pair.
// Always recomputed from its inputs, never stored independently.
type CostRange struct {
	RateLow   decimal.Decimal
	RateHigh  decimal.Decimal
	TotalLow  decimal.Decimal
	TotalHigh decimal.Decimal
}
