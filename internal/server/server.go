package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Vibhor2702/pr-review/internal/artifacts"
	"github.com/Vibhor2702/pr-review/internal/config"
	"github.com/Vibhor2702/pr-review/internal/pipeline"
)

// Server is the prreview HTTP API server.
type Server struct {
	cfg    config.Config
	store  *artifacts.Store
	mux    *http.ServeMux
	server *http.Server

	// runFn executes a review. Swapped out in tests.
	runFn func(ctx context.Context, opts pipeline.Options, progress pipeline.Progress) (*artifacts.Record, error)
}

// New creates a new API server.
func New(cfg config.Config, store *artifacts.Store) *Server {
	s := &Server{cfg: cfg, store: store}
	s.runFn = func(ctx context.Context, opts pipeline.Options, progress pipeline.Progress) (*artifacts.Record, error) {
		return pipeline.New(cfg, store, progress).Run(ctx, opts)
	}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /review_pr", s.handleReviewPR)
	s.mux.HandleFunc("GET /providers", s.handleProviders)
	s.mux.HandleFunc("GET /config", s.handleConfig)
	s.mux.HandleFunc("GET /artifacts", s.handleArtifactList)
	s.mux.HandleFunc("GET /artifacts/{id}", s.handleArtifactGet)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	log.Printf("prreview API server listening on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes a JSON request body into v.
func readJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(v)
}
