// Package server is the HTTP boundary of the graphrag service: one
// question endpoint, one stats endpoint, one health endpoint. It does no
// reasoning of its own; everything is delegated to the agent and catalog.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/catalog"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// QueryAnswerer answers one natural-language question.
// *agent.Librarian satisfies it.
type QueryAnswerer interface {
	HandleQuery(ctx context.Context, text string) (string, error)
}

// CatalogInfo is the slice of the catalog the info endpoints need.
// *catalog.Catalog satisfies it.
type CatalogInfo interface {
	Stats(ctx context.Context) (catalog.Stats, error)
	Health(ctx context.Context) types.HealthStatus
}

// Config controls listener address and timeouts.
type Config struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server serves the HTTP API.
type Server struct {
	answerer QueryAnswerer
	info     CatalogInfo
	logger   *slog.Logger
	http     *http.Server
	shutdown time.Duration
}

// New builds the server and its routes. A nil logger falls back to
// slog.Default().
func New(cfg Config, answerer QueryAnswerer, info CatalogInfo, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		answerer: answerer,
		info:     info,
		logger:   logger,
		shutdown: cfg.ShutdownTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /ask", s.handleAsk)
	mux.HandleFunc("GET /graph-info", s.handleGraphInfo)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.http = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.withRequestID(mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler exposes the routed handler, used by tests and embedding callers.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until Shutdown is called or the
// listener fails.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", "address", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdown > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.shutdown)
		defer cancel()
	}
	s.logger.Info("http server shutting down")
	return s.http.Shutdown(ctx)
}

type askRequest struct {
	Query string `json:"query"`
}

type askResponse struct {
	Response string `json:"response"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		s.writeError(w, r, http.StatusBadRequest, "query must not be empty")
		return
	}

	answer, err := s.answerer.HandleQuery(r.Context(), req.Query)
	if err != nil {
		s.logger.Error("query handling failed",
			"request_id", requestID(r.Context()),
			"error", err)
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, r, http.StatusOK, askResponse{Response: answer})
}

func (s *Server) handleGraphInfo(w http.ResponseWriter, r *http.Request) {
	stats, err := s.info.Stats(r.Context())
	if err != nil {
		s.logger.Error("stats lookup failed",
			"request_id", requestID(r.Context()),
			"error", err)
		s.writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.info.Health(r.Context())
	code := http.StatusOK
	if status.State == types.HealthStateUnhealthy {
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, r, code, status)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code int, detail string) {
	s.writeJSON(w, r, code, errorResponse{Detail: detail})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response",
			"request_id", requestID(r.Context()),
			"error", err)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// withRequestID tags every request with a UUID for log correlation and
// logs one line per request.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		s.logger.Info("request handled",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", fmt.Sprintf("%.1fms", float64(time.Since(start).Microseconds())/1000))
	})
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
