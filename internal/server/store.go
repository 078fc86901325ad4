package server

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// maxEntityBytes bounds a stored entity's JSON body.
const maxEntityBytes = 1 << 20

func (s *Server) table(w http.ResponseWriter, r *http.Request) (types.Table, bool) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", "storage is not configured")
		return nil, false
	}
	t, err := s.store.GetTable(chi.URLParam(r, "table"))
	if err != nil {
		writeErr(w, err)
		return nil, false
	}
	return t, true
}

func (s *Server) handleStoreList(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	pairs := make(map[string]string)
	for k, vs := range r.URL.Query() {
		if len(vs) > 0 {
			pairs[k] = vs[0]
		}
	}
	items, err := t.Fetch(types.ParseFilter(pairs))
	if err != nil {
		writeErr(w, err)
		return
	}
	if items == nil {
		items = []any{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleStoreGet(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	v, err := t.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleStoreCreate(w http.ResponseWriter, r *http.Request) {
	s.storeSet(w, r, "", http.StatusCreated)
}

func (s *Server) handleStorePut(w http.ResponseWriter, r *http.Request) {
	s.storeSet(w, r, chi.URLParam(r, "id"), http.StatusOK)
}

func (s *Server) storeSet(w http.ResponseWriter, r *http.Request, id string, status int) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEntityBytes))
	if err != nil {
		writeErr(w, bodyError(err))
		return
	}
	entity, err := types.DecodeEntity(chi.URLParam(r, "table"), body)
	if err != nil {
		writeErr(w, err)
		return
	}
	var newID string
	if pref, ok := togglePreference(chi.URLParam(r, "table"), id, entity); ok {
		newID, err = types.PrefEnabledTools, s.toggles.Replace(pref)
	} else {
		newID, err = t.Set(id, entity)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	stored, err := t.Get(newID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, status, stored)
}

func (s *Server) handleStoreDelete(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := t.Delete(id); err != nil {
		writeErr(w, err)
		return
	}
	if chi.URLParam(r, "table") == types.PreferencesTable && id == types.PrefEnabledTools {
		if err := s.toggles.Reload(); err != nil {
			writeErr(w, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// togglePreference reports whether a store write targets the enabled-tools
// preference, which the toggles own.
func togglePreference(table, id string, entity any) (*types.Preference, bool) {
	if table != types.PreferencesTable {
		return nil, false
	}
	pref, ok := entity.(*types.Preference)
	if !ok {
		return nil, false
	}
	if id == "" {
		id = pref.Key
	}
	if id != types.PrefEnabledTools {
		return nil, false
	}
	pref.Key = id
	return pref, true
}
