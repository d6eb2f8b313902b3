package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lodeworks/lodestone/pkg/store"
)

// Server handles HTTP requests for the published resources
type Server struct {
	store   ResourceReader
	config  ServerConfig
	metrics *Metrics
	started time.Time
}

// NewServer creates a new API server instance
func NewServer(reader ResourceReader, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   reader,
		config:  config,
		metrics: metrics,
		started: time.Now(),
	}
}

// handleHealth returns service health and the number of published kinds
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	kinds, err := s.store.Kinds()
	s.metrics.RecordStoreRead("kinds", err)
	if err != nil {
		sendError(w, "Store unavailable: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	sendSuccess(w, map[string]interface{}{
		"status": "healthy",
		"kinds":  len(kinds),
		"uptime": time.Since(s.started).String(),
	})
}

// handleKinds lists every published resource kind
func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	kinds, err := s.store.Kinds()
	s.metrics.RecordStoreRead("kinds", err)
	if err != nil {
		sendError(w, "Failed to list kinds: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.metrics.SetResourceKinds(len(kinds))

	sendSuccess(w, map[string]interface{}{
		"kinds": kinds,
		"count": len(kinds),
	})
}

// handleGetResource returns the current resource snapshot for a kind
func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if kind == "" {
		sendError(w, "Kind is required", http.StatusBadRequest)
		return
	}

	res, err := s.store.Current(kind)
	s.metrics.RecordStoreRead("current", err)
	if err == store.ErrKindNotFound {
		sendError(w, "No resource for kind: "+kind, http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, "Failed to read resource: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, res)
}

// handleHistory returns every stored version of a kind, oldest first
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if kind == "" {
		sendError(w, "Kind is required", http.StatusBadRequest)
		return
	}

	history, err := s.store.History(kind)
	s.metrics.RecordStoreRead("history", err)
	if err == store.ErrKindNotFound {
		sendError(w, "No resource for kind: "+kind, http.StatusNotFound)
		return
	}
	if err != nil {
		sendError(w, "Failed to read history: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, map[string]interface{}{
		"kind":     kind,
		"versions": history,
		"count":    len(history),
	})
}
