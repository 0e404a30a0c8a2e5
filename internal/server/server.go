// internal/server/server.go

// Package server is the HTTP surface: the SSE generation endpoint, context
// capture, health, and metrics.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/config"
	stderrors "github.com/paolomoz/vitamix-gensite-sub000/internal/common/errors"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/events"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/orchestrator"
)

// Runner executes one generation run against a sender.
type Runner interface {
	Run(ctx context.Context, in *orchestrator.RunInput, sender events.Sender)
}

// ContextStore is what the handlers need from the context store.
type ContextStore interface {
	Put(ctx context.Context, ec *models.ExtensionContext) (string, error)
	Get(ctx context.Context, id string) (*models.ExtensionContext, error)
}

// Pinger reports backend reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds handler dependencies and the route table.
type Server struct {
	config     *config.ServerConfig
	runner     Runner
	store      ContextStore
	ttlSeconds int
	redis      Pinger
	es         Pinger
	logger     logger.Logger
	mux        *http.ServeMux
}

func New(cfg *config.ServerConfig, runner Runner, store ContextStore, ttlSeconds int, redis, es Pinger, log logger.Logger) *Server {
	s := &Server{
		config:     cfg,
		runner:     runner,
		store:      store,
		ttlSeconds: ttlSeconds,
		redis:      redis,
		es:         es,
		logger:     log.WithFields(map[string]interface{}{"component": "server"}),
		mux:        http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/generate", s.handleGenerate)
	s.mux.HandleFunc("POST /api/context", s.handleContextPut)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// writeError sends the JSON error envelope with the code's mapped status.
func (s *Server) writeError(w http.ResponseWriter, stdErr *stderrors.StandardError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(stdErr.HTTPStatus())
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    string(stdErr.Code),
			"message": stdErr.Message,
		},
	}); err != nil {
		s.logger.Warn("error response write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response write failed", map[string]interface{}{"error": err.Error()})
	}
}
