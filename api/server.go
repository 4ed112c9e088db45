// Package api - Thin API layer over the analytics engine.
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs report arithmetic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"retail-analytics/core/dataset"
	"retail-analytics/core/engine"
	"retail-analytics/core/insights"
	"retail-analytics/internal/errors"
	"retail-analytics/internal/logging"
)

// Server is the API server
type Server struct {
	mux          *http.ServeMux
	version      string
	maxBodyBytes int64
}

// NewServer creates a new API server
func NewServer(version string, maxBodyBytes int64) *Server {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 16 << 20
	}
	s := &Server{
		mux:          http.NewServeMux(),
		version:      version,
		maxBodyBytes: maxBodyBytes,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoint
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleAnalyze handles POST /analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req AnalyzeRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	if err := validateAnalyzeRequest(&req); err != nil {
		s.writeError(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	// Build the dataset and run every report (NO REPORT ARITHMETIC HERE)
	ds, issues := dataset.New(req.Customers, req.Products, req.Transactions)
	bundle := engine.New(ds).Bundle(req.TopN)

	resp := &AnalyzeResponse{
		Reports:  bundle,
		Insights: insights.FromBundle(bundle, ds),
		Issues:   issues,
		Metadata: &ResponseMetadata{
			EngineVersion: s.version,
			Customers:     len(ds.Customers),
			Products:      len(ds.Products),
			Transactions:  len(ds.Transactions),
			DurationMs:    time.Since(start).Milliseconds(),
		},
	}

	logging.Debug("analyze request served",
		zap.Int("transactions", len(ds.Transactions)),
		zap.Int("issues", len(issues)),
		zap.Int64("duration_ms", resp.Metadata.DurationMs))

	s.writeJSON(w, resp, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "retail-analytics",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

func validateAnalyzeRequest(req *AnalyzeRequest) error {
	if len(req.Transactions) == 0 {
		return errors.Input("transactions are required")
	}
	if req.TopN < 0 {
		return errors.Input("top_n must not be negative")
	}
	return nil
}
