package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/codemap/internal/store"
	"github.com/matzehuels/codemap/pkg/cache"
	"github.com/matzehuels/codemap/pkg/diagram"
	"github.com/matzehuels/codemap/pkg/errors"
	"github.com/matzehuels/codemap/pkg/source"
	"github.com/matzehuels/codemap/pkg/tree"
)

// handleTree returns the repository file tree as JSON.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	root, kind, ok := s.fetchTree(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"type": kind,
		"tree": root,
	})
}

// handleDiagram generates a diagram for the repository tree and returns
// it as plain text.
func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	mode := diagram.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = diagram.ModeMindmap
	}
	if err := diagram.ValidateMode(mode); err != nil {
		s.renderError(w, err)
		return
	}

	root, kind, ok := s.fetchTree(w, r)
	if !ok {
		return
	}

	text, err := diagram.Generate(root, mode)
	if err != nil {
		s.renderError(w, err)
		return
	}

	s.record(r, kind, string(mode), text)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

// handleHistory returns recent emissions, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	emissions, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.log.Error("query history", "error", err)
		jsonError(w, "failed to query history", http.StatusInternalServerError)
		return
	}
	if emissions == nil {
		emissions = []store.Emission{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"emissions": emissions})
}

// fetchTree resolves the request's repository to a tree. On failure it
// writes the error response and returns ok=false.
func (s *Server) fetchTree(w http.ResponseWriter, r *http.Request) (*tree.Node, string, bool) {
	kind := r.URL.Query().Get("type")
	if kind == "" {
		kind = source.KindGitHub
	}
	src, ok := s.sources[kind]
	if !ok {
		s.renderError(w, errors.New(errors.ErrCodeUnsupported, "unsupported repository kind: %q", kind))
		return nil, "", false
	}

	owner := chi.URLParam(r, "owner")
	repo := chi.URLParam(r, "repo")
	root, err := src.Tree(r.Context(), owner, repo)
	if err != nil {
		s.renderError(w, err)
		return nil, "", false
	}
	return root, kind, true
}

// record saves an emission. Failures are logged, not surfaced: history is
// best-effort and must not fail diagram requests.
func (s *Server) record(r *http.Request, kind, mode, text string) {
	e := store.Emission{
		ID:        store.NewID(),
		Owner:     chi.URLParam(r, "owner"),
		Repo:      chi.URLParam(r, "repo"),
		Kind:      kind,
		Mode:      mode,
		Hash:      cache.Hash([]byte(text)),
		Size:      len(text),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Record(r.Context(), e); err != nil {
		s.log.Error("record emission", "error", err)
	}
}

// renderError maps error codes to HTTP statuses and writes a JSON body.
func (s *Server) renderError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMode, errors.ErrCodeInvalidRepo, errors.ErrCodeUnsupported, errors.ErrCodeMalformedTree:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	jsonError(w, errors.UserMessage(err), status)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
