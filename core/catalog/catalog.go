// Package catalog derives the selectable region list from a pricing table.
package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"construction-cost/core/types"
)

// Entry is one selectable region
type Entry struct {
	// Key is the region identifier used for rate lookup
	Key types.RegionKey `json:"key"`

	// Title is the display name
	Title string `json:"title"`
}

// List returns the region entries in display order.
//
// Ordering is a hard contract: ordinary regions sort ascending by title
// under the given locale, and the fallback region, when present, is always
// appended last regardless of its title. A nil or empty table produces an
// empty list.
func List(table types.PricingTable, tag language.Tag) []Entry {
	if len(table) == 0 {
		return nil
	}

	entries := make([]Entry, 0, len(table))
	var fallback *Entry
	for key, rates := range table {
		entry := Entry{Key: key, Title: rates.Title}
		if key == types.FallbackRegionKey {
			fallback = &entry
			continue
		}
		entries = append(entries, entry)
	}

	coll := collate.New(tag)
	sort.Slice(entries, func(i, j int) bool {
		if c := coll.CompareString(entries[i].Title, entries[j].Title); c != 0 {
			return c < 0
		}
		// Equal titles: key order keeps the result deterministic
		return entries[i].Key < entries[j].Key
	})

	if fallback != nil {
		entries = append(entries, *fallback)
	}

	return entries
}
