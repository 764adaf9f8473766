// Package api exposes tree fetching and diagram generation over HTTP.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/codemap/internal/store"
	"github.com/matzehuels/codemap/pkg/source"
)

// Server is the HTTP API server for codemap.
type Server struct {
	router  chi.Router
	sources map[string]source.Source
	store   store.Store
	log     *log.Logger
}

// NewServer creates and configures the HTTP server. The sources map is
// keyed by repository kind ("github", "local").
func NewServer(sources map[string]source.Source, st store.Store, logger *log.Logger) *Server {
	s := &Server{
		sources: sources,
		store:   st,
		log:     logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/api/tree/{owner}/{repo}", s.handleTree)
	r.Get("/api/diagram/{owner}/{repo}", s.handleDiagram)
	r.Get("/api/history", s.handleHistory)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
