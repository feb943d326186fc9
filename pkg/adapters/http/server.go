package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/timescript"
	"github.com/aretw0/timescript/pkg/domain"
	"github.com/aretw0/timescript/pkg/export"
)

// MaxSourceBytes bounds the size of a request body.
const MaxSourceBytes = 1 << 20

// Engine defines the operations the HTTP API exposes.
type Engine interface {
	Compile(ctx context.Context, source string) (*domain.Compilation, error)
	Validate(ctx context.Context, source string) []domain.Diagnostic
	Export(ctx context.Context, source string, format export.Format) ([]byte, error)
}

// ValidateResponse is the body of POST /validate.
type ValidateResponse struct {
	Diagnostics []domain.Diagnostic `json:"diagnostics"`
	Errors      int                 `json:"errors"`
	Warnings    int                 `json:"warnings"`
}

// Server serves an Engine over HTTP.
type Server struct {
	Engine  Engine
	Metrics http.Handler
	Logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{Engine: engine, Logger: slog.Default()}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/compile", server.Compile)
	r.Post("/validate", server.Validate)
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Compile handles the POST /compile request. The body is the script text.
func (s *Server) Compile(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	source, ok := s.readSource(w, r)
	if !ok {
		return
	}

	data, err := s.Engine.Export(r.Context(), source, format)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrUnsupportedFormat) {
			status = http.StatusBadRequest
		}
		http.Error(w, fmt.Sprintf("Compile error: %v", err), status)
		s.Logger.Error("Compile failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if _, err := w.Write(data); err != nil {
		s.Logger.Error("Compile response write failed", "error", err)
	}
}

// Validate handles the POST /validate request. It answers 200 even when the
// script has errors; the counts tell the caller.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	source, ok := s.readSource(w, r)
	if !ok {
		return
	}

	diags := s.Engine.Validate(r.Context(), source)
	resp := ValidateResponse{
		Diagnostics: diags,
		Errors:      domain.CountSeverity(diags, domain.SeverityError),
		Warnings:    domain.CountSeverity(diags, domain.SeverityWarning),
	}
	if resp.Diagnostics == nil {
		resp.Diagnostics = []domain.Diagnostic{}
	}
	writeJSON(w, s.Logger, resp)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	formats := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		formats = append(formats, string(f))
	}
	writeJSON(w, s.Logger, map[string]any{
		"app":     "timescript-http",
		"version": timescript.Version,
		"formats": formats,
	})
}

func (s *Server) readSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxSourceBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Script too large", http.StatusRequestEntityTooLarge)
			return "", false
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Invalid request body", "error", err)
		return "", false
	}
	return string(body), true
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}
