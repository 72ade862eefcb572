// Package api exposes the estimation engine over a read-only HTTP API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"construction-cost/core/catalog"
	"construction-cost/core/estimator"
	"construction-cost/core/output"
	"construction-cost/core/pricing"
	"construction-cost/core/rates"
	"construction-cost/core/types"
	"construction-cost/internal/logging"
)

// Config holds HTTP server configuration
type Config struct {
	// Address to listen on
	Address string `json:"address"`

	// ReadTimeout for requests
	ReadTimeout time.Duration `json:"read_timeout"`

	// WriteTimeout for responses
	WriteTimeout time.Duration `json:"write_timeout"`

	// EnableCORS enables CORS headers
	EnableCORS bool `json:"enable_cors"`

	// AllowedOrigins for CORS
	AllowedOrigins []string `json:"allowed_origins"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Address:      ":8080",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		EnableCORS:   true,
	}
}

// Server serves region listings and cost estimates.
// It loads the pricing table once at startup; a failed load leaves it in
// a degraded state that answers requests instead of crashing.
type Server struct {
	config    *Config
	formatter *output.Formatter
	locale    language.Tag

	mu      sync.RWMutex
	status  pricing.Status
	loadErr error
	table   types.PricingTable

	server *http.Server

	// Metrics
	requestCount   int64
	errorCount     int64
	totalLatencyMs int64
}

// NewServer creates a server. The pricing table is not loaded yet.
func NewServer(config *Config, formatter *output.Formatter, locale language.Tag) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{
		config:    config,
		formatter: formatter,
		locale:    locale,
		status:    pricing.StatusIdle,
	}
}

// LoadPricing performs the one startup load. A failure is recorded, not
// returned: the server stays up in the degraded state.
func (s *Server) LoadPricing(ctx context.Context, src pricing.Source) {
	s.mu.Lock()
	s.status = pricing.StatusLoading
	s.mu.Unlock()

	table, err := pricing.Load(ctx, src)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = pricing.StatusFailed
		s.loadErr = err
		logging.Error("pricing load failed, serving degraded", zap.Error(err))
		return
	}
	s.table = table
	s.status = pricing.StatusReady
	logging.Info("pricing table loaded", zap.Int("regions", len(table)))
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/regions", s.handleRegions)
	mux.HandleFunc("GET /api/v1/estimate", s.handleEstimate)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	handler := s.corsMiddleware(mux)
	handler = s.loggingMiddleware(handler)
	handler = s.recoveryMiddleware(handler)

	return handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.config.Address,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// RegionsResponse lists the selectable regions in display order
type RegionsResponse struct {
	Success bool            `json:"success"`
	Status  string          `json:"status"`
	Error   string          `json:"error,omitempty"`
	Regions []catalog.Entry `json:"regions"`
}

// EstimateResponse is the estimate API response.
// Estimated is false when the inputs do not yet yield a cost range; the
// display fields then carry the neutral placeholder.
type EstimateResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Region    string `json:"region,omitempty"`
	Category  string `json:"category,omitempty"`
	Estimated bool   `json:"estimated"`

	RateLow   string `json:"rate_low,omitempty"`
	RateHigh  string `json:"rate_high,omitempty"`
	TotalLow  string `json:"total_low,omitempty"`
	TotalHigh string `json:"total_high,omitempty"`

	Display DisplayBlock `json:"display"`
}

// DisplayBlock carries the formatted strings for direct rendering
type DisplayBlock struct {
	Rates string `json:"rates"`
	Total string `json:"total"`
}

// Handler implementations

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := s.status
	s.mu.RUnlock()
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"pricing": status.String(),
	})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := s.status
	loadErr := s.loadErr
	table := s.table
	s.mu.RUnlock()

	resp := RegionsResponse{
		Success: status == pricing.StatusReady,
		Status:  status.String(),
		Regions: []catalog.Entry{},
	}
	if loadErr != nil {
		resp.Error = loadErr.Error()
	}
	if status == pricing.StatusReady {
		if entries := catalog.List(table, s.locale); entries != nil {
			resp.Regions = entries
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	status := s.status
	table := s.table
	s.mu.RUnlock()

	if status != pricing.StatusReady {
		s.writeError(w, http.StatusServiceUnavailable, "pricing data unavailable")
		return
	}

	q := r.URL.Query()
	regionKey := types.RegionKey(q.Get("region"))
	areaText := q.Get("area")

	category := types.CategoryResidential
	if c := q.Get("category"); c != "" {
		category = types.Category(c)
		if !category.Valid() {
			s.writeError(w, http.StatusBadRequest, "unknown category: "+c)
			return
		}
	}

	pair, haveRates := rates.Select(table, regionKey, category)
	cost, haveCost := estimator.Estimate(pair, haveRates, areaText)

	resp := EstimateResponse{
		Success:  true,
		Region:   string(regionKey),
		Category: string(category),
		Display: DisplayBlock{
			Rates: output.Placeholder,
			Total: output.Placeholder,
		},
	}

	if haveRates {
		resp.RateLow = pair.Low.String()
		resp.RateHigh = pair.High.String()
		resp.Display.Rates = s.formatter.Range(pair.Low, pair.High)
	}
	if haveCost {
		resp.Estimated = true
		resp.TotalLow = cost.TotalLow.String()
		resp.TotalHigh = cost.TotalHigh.String()
		resp.Display.Total = s.formatter.TotalRange(cost)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	avgLatency := float64(0)
	if s.requestCount > 0 {
		avgLatency = float64(s.totalLatencyMs) / float64(s.requestCount)
	}

	metrics := fmt.Sprintf(`# HELP construction_cost_requests_total Total requests
# TYPE construction_cost_requests_total counter
construction_cost_requests_total %d

# HELP construction_cost_errors_total Total errors
# TYPE construction_cost_errors_total counter
construction_cost_errors_total %d

# HELP construction_cost_latency_avg_ms Average latency
# TYPE construction_cost_latency_avg_ms gauge
construction_cost_latency_avg_ms %.2f
`, s.requestCount, s.errorCount, avgLatency)

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(metrics))
}

// Middleware

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.EnableCORS {
			origin := "*"
			if len(s.config.AllowedOrigins) > 0 && s.config.AllowedOrigins[0] != "*" {
				origin = s.config.AllowedOrigins[0]
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		s.mu.Lock()
		s.requestCount++
		s.totalLatencyMs += time.Since(start).Milliseconds()
		s.mu.Unlock()

		logging.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.mu.Lock()
				s.errorCount++
				s.mu.Unlock()

				logging.Error("panic in handler", zap.Any("error", err))
				s.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Helpers

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
