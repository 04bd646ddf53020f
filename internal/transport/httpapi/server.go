// Package httpapi exposes the query-processing pipeline over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/askflow/internal/domain"
	"github.com/kailas-cloud/askflow/internal/metrics"
)

// healthVersion is the fixed version string reported by GET /health.
const healthVersion = "1.0.0"

// QueryProcessor runs the full classify-route-generate pipeline for one query.
type QueryProcessor interface {
	Process(ctx context.Context, query string) domain.Result
}

// Server handles the public HTTP API.
type Server struct {
	assist QueryProcessor
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(assist QueryProcessor, logger *zap.Logger) *Server {
	return &Server{assist: assist, logger: logger}
}

// Router assembles the chi router with the full middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(s.recoverer)
	r.Use(corsHeaders)
	r.Use(metrics.Middleware())

	r.Get("/health", s.handleHealth)
	r.Post("/query", s.handleQuery)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleNotFound)

	return r
}

type queryRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var req queryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter is required")
		return
	}

	result := s.assist.Process(r.Context(), req.Query)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": healthVersion,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Endpoint not found")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
