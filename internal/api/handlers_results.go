package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwhitten/redline/internal/store"
)

// handleListResults lists stored formatted outputs.
func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	entries, err := s.orchestrator.ResultStore().List()
	if err != nil {
		jsonError(w, "failed to list results: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"results": entries})
}

// handleDeleteResult removes every stored output for a document name.
func (s *Server) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	removed, err := s.orchestrator.ResultStore().Delete(name)
	if err != nil {
		jsonError(w, "failed to delete results: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"removed": removed})
}
