// Package api - Thin HTTP layer over the quote calculator
// The API is ONLY responsible for: input ingestion, calculator invocation, output serialization.
// The API NEVER performs fee logic.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"logiquant/core/quote"
	"logiquant/internal/logging"
)

// Header names
const (
	HeaderRequestID    = "X-Request-ID"
	HeaderRatesVersion = "X-LogiQuant-Rates-Version"
)

// Config configures the server
type Config struct {
	// Version is the build version reported by /health and /version
	Version string

	// CacheMaxAgeSeconds is the s-maxage of successful price responses
	CacheMaxAgeSeconds int

	// StaleWhileRevalidateSeconds lets shared caches serve stale prices
	StaleWhileRevalidateSeconds int

	// Logger receives one entry per request (nil = logging.Logger)
	Logger *zap.Logger
}

// DefaultConfig returns a day of shared caching with a week of staleness
func DefaultConfig() Config {
	return Config{
		Version:                     "dev",
		CacheMaxAgeSeconds:          86400,
		StaleWhileRevalidateSeconds: 604800,
	}
}

// Server is the API server
type Server struct {
	calc   *quote.Calculator
	mux    *http.ServeMux
	config Config
	logger *zap.Logger

	// ratesETag identifies the rate table content for conditional requests
	ratesETag string
}

// NewServer creates a new API server
func NewServer(calc *quote.Calculator, config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = logging.Logger
	}

	s := &Server{
		calc:      calc,
		mux:       http.NewServeMux(),
		config:    config,
		logger:    logger,
		ratesETag: `"` + calc.Rates().Fingerprint().String() + `"`,
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("GET /api/v1/total", s.handleTotal)
	s.mux.HandleFunc("POST /api/v1/quote", s.handleQuote)
	s.mux.HandleFunc("GET /api/v1/rates", s.handleRates)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:       "healthy",
		Version:      s.config.Version,
		RatesVersion: s.calc.RatesVersion(),
		Time:         time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, VersionResponse{
		Version:      s.config.Version,
		Engine:       "logiquant",
		APIVersion:   "v1",
		RatesVersion: s.calc.RatesVersion(),
		RatesHash:    s.calc.Rates().Fingerprint().Hex(),
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeText(w http.ResponseWriter, body string, status int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// cacheControl is sent with successful price responses
func (s *Server) cacheControl() string {
	return fmt.Sprintf("public, max-age=0, s-maxage=%d, stale-while-revalidate=%d",
		s.config.CacheMaxAgeSeconds, s.config.StaleWhileRevalidateSeconds)
}

// ServeHTTP implements http.Handler. Every response carries a request ID
// and every request is logged.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	requestID := r.Header.Get(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(HeaderRequestID, requestID)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)

	s.logger.Info("request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", rec.status),
		zap.Duration("duration", time.Since(start)),
	)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
