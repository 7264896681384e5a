// Package api exposes the merge pipeline over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/pagemerge/internal/config"
	"github.com/dgallion1/pagemerge/internal/pipeline"
)

// Server wires HTTP routes to the orchestrator.
type Server struct {
	cfg    config.Config
	orch   *pipeline.Orchestrator
	log    *slog.Logger
	router chi.Router
}

func NewServer(cfg config.Config, orch *pipeline.Orchestrator, log *slog.Logger) *Server {
	s := &Server{
		cfg:  cfg,
		orch: orch,
		log:  log,
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey))

		r.Post("/api/merge", s.handleMerge)
		r.Post("/api/merge/sync", s.handleMergeSync)
		r.Get("/api/merge/{jobID}/status", s.handleMergeStatus)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"queue_depth": s.orch.QueueDepth(),
	})
}
