// Package session holds the user's current selections and keeps every
// derived value consistent with them.
//
// The session owns the one pricing fetch of its lifetime. Region key, area
// text, and category are the only mutable state; the region list, rate
// pair, and cost range are recomputed from a snapshot of that state on
// every read, so no view can ever mix a stale region with a fresh
// category or table.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"construction-cost/core/catalog"
	"construction-cost/core/estimator"
	"construction-cost/core/pricing"
	"construction-cost/core/rates"
	"construction-cost/core/types"
	"construction-cost/internal/logging"
)

// View is the fully derived state of a session at one instant.
// Everything here is a pure function of the session's inputs.
type View struct {
	// Status is the pricing-load state
	Status pricing.Status

	// LoadError is the human-readable load failure cause, if failed
	LoadError string

	// Regions is the ordered selectable region list
	Regions []catalog.Entry

	// RegionKey is the current selection ("" means none)
	RegionKey types.RegionKey

	// AreaText is the raw area input
	AreaText string

	// Category is the current category
	Category types.Category

	// RatePair is the resolved rate pair when HaveRates
	RatePair types.RatePair

	// HaveRates reports whether RatePair is meaningful
	HaveRates bool

	// CostRange is the derived cost range when HaveCost
	CostRange types.CostRange

	// HaveCost reports whether CostRange is meaningful
	HaveCost bool

	// RegionSelectEnabled reports whether region selection is usable
	RegionSelectEnabled bool
}

// Session is single-user interaction state.
// All mutation goes through the mutex; the fetch completion is the only
// writer outside the caller's goroutine.
type Session struct {
	mu sync.Mutex

	locale language.Tag

	status  pricing.Status
	loadErr error
	table   types.PricingTable

	regionKey types.RegionKey
	areaText  string
	category  types.Category

	// open gates the fetch result so nothing mutates a torn-down session
	open    bool
	started bool

	done     chan struct{}
	doneOnce sync.Once
}

// New creates a session with empty selections and residential category
func New(locale language.Tag) *Session {
	return &Session{
		locale:   locale,
		status:   pricing.StatusIdle,
		category: types.CategoryResidential,
		open:     true,
		done:     make(chan struct{}),
	}
}

// Begin starts the pricing load. It is a no-op after the first call and
// after Close. The fetch result is applied at most once, and only while
// the session is still open.
func (s *Session) Begin(ctx context.Context, src pricing.Source) {
	s.mu.Lock()
	if s.started || !s.open {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.status = pricing.StatusLoading
	s.mu.Unlock()

	go func() {
		table, err := pricing.Load(ctx, src)
		s.applyLoad(table, err)
	}()
}

func (s *Session) applyLoad(table types.PricingTable, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.doneOnce.Do(func() { close(s.done) })

	// Liveness and at-most-once guard: a result arriving after Close, or
	// after the status already went terminal, is discarded.
	if !s.open || s.status != pricing.StatusLoading {
		return
	}

	if err != nil {
		s.status = pricing.StatusFailed
		s.loadErr = err
		logging.Warn("pricing load failed", zap.Error(err))
		return
	}

	s.table = table
	s.status = pricing.StatusReady
	logging.Debug("pricing table loaded", zap.Int("regions", len(table)))
}

// SetRegion records a region selection. Ignored while pricing data is not
// ready, matching the disabled region selector.
func (s *Session) SetRegion(key types.RegionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != pricing.StatusReady {
		return
	}
	s.regionKey = key
}

// SetArea records the raw area text
func (s *Session) SetArea(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.areaText = text
}

// SetCategory records the category. Unknown values are ignored.
func (s *Session) SetCategory(category types.Category) {
	if !category.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
}

// Wait blocks until the pricing load reaches a terminal state or the
// context is done. The resulting status is observable through View.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears the session down. A pending fetch resolving afterwards has
// no effect.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.doneOnce.Do(func() { close(s.done) })
}

// View recomputes every derived value from the current state snapshot
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Status:              s.status,
		RegionKey:           s.regionKey,
		AreaText:            s.areaText,
		Category:            s.category,
		RegionSelectEnabled: s.status == pricing.StatusReady,
	}

	if s.loadErr != nil {
		v.LoadError = s.loadErr.Error()
	}

	if s.status != pricing.StatusReady {
		return v
	}

	v.Regions = catalog.List(s.table, s.locale)
	v.RatePair, v.HaveRates = rates.Select(s.table, s.regionKey, s.category)
	v.CostRange, v.HaveCost = estimator.Estimate(v.RatePair, v.HaveRates, s.areaText)

	return v
}
