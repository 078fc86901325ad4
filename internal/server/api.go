package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/toolbox/internal/registry"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// toolView is a tool as listed by the API.
type toolView struct {
	types.Tool
	Enabled bool `json:"enabled"`
}

// runResponse carries a result with its download payload base64-encoded.
type runResponse struct {
	types.Result
	Data []byte `json:"data,omitempty"`
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	out := []toolView{}
	for _, t := range s.reg.List() {
		if category != "" && t.Category != category {
			continue
		}
		out = append(out, toolView{Tool: t, Enabled: s.toggles.Enabled(t.ID)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	e, err := s.reg.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toolView{Tool: e.Tool, Enabled: s.toggles.Enabled(e.Tool.ID)})
}

func (s *Server) handleRunTool(w http.ResponseWriter, r *http.Request) {
	e, err := s.enabledEntry(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	in, err := s.readInput(w, r, true)
	if err != nil {
		writeErr(w, err)
		return
	}
	res, err := s.run(r.Context(), e, in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runResponse{Result: res, Data: res.Data})
}

func (s *Server) handleSidebar(w http.ResponseWriter, _ *http.Request) {
	sections := s.toggles.Sidebar()
	if sections == nil {
		sections = []registry.Section{}
	}
	writeJSON(w, http.StatusOK, sections)
}

func (s *Server) handleSetEnabled(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Enabled *bool `json:"enabled"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&body); err != nil || body.Enabled == nil {
		writeError(w, http.StatusBadRequest, string(types.KindInput), `body must be {"enabled": true|false}`)
		return
	}
	if err := s.toggles.SetEnabled(id, *body.Enabled); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "enabled": *body.Enabled})
}
