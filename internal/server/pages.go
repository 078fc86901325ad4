package server

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/toolbox/internal/page"
	"github.com/mesh-intelligence/toolbox/internal/registry"
	"github.com/mesh-intelligence/toolbox/pkg/types"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sidebar := s.toggles.Sidebar()
	v := page.IndexView{Sidebar: sidebar, Sections: sidebar, Query: r.URL.Query().Get("q")}
	if v.Query != "" {
		v.Results = s.enabledOnly(s.reg.Search(v.Query))
	}
	s.writePage(w, http.StatusOK, func(buf *bytes.Buffer) error { return s.pages.Index(buf, v) })
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, http.StatusNotFound, func(buf *bytes.Buffer) error {
		return s.pages.NotFound(buf, s.toggles.Sidebar(), r.URL.Path)
	})
}

func (s *Server) handleToolPage(w http.ResponseWriter, r *http.Request) {
	e, err := s.resolve(chi.URLParam(r, "route"))
	if err != nil {
		s.handleNotFound(w, r)
		return
	}
	s.renderTool(w, http.StatusOK, e, page.ContentView{Tool: e.Tool})
}

// handleToolSubmit runs the widget on the posted form. A result carrying a
// file is sent as an attachment when the form asks for download=1.
func (s *Server) handleToolSubmit(w http.ResponseWriter, r *http.Request) {
	e, err := s.resolve(chi.URLParam(r, "route"))
	if err != nil {
		s.handleNotFound(w, r)
		return
	}

	in, err := s.readInput(w, r, false)
	if err == nil {
		var res types.Result
		res, err = s.run(r.Context(), e, in)
		if err == nil {
			if res.HasDownload() && r.FormValue("download") == "1" {
				writeDownload(w, res)
				return
			}
			s.renderTool(w, http.StatusOK, e, page.ContentView{Tool: e.Tool, Values: in.Values, Result: &res})
			return
		}
	}
	status, _, _ := classify(err)
	s.renderTool(w, status, e, page.ContentView{Tool: e.Tool, Values: in.Values, Err: err})
}

func (s *Server) renderTool(w http.ResponseWriter, status int, e *registry.Entry, cv page.ContentView) {
	content, err := s.pages.Content(cv)
	if err != nil {
		s.log.Error("render content", zap.String("tool", e.Tool.ID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	related, _ := s.reg.Related(e.Tool.ID)
	v := page.View{
		Tool:    e.Tool,
		Sidebar: s.toggles.Sidebar(),
		Related: s.enabledOnly(related),
		Content: content,
	}
	s.writePage(w, status, func(buf *bytes.Buffer) error { return s.pages.Render(buf, v) })
}

func (s *Server) writePage(w http.ResponseWriter, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.log.Error("render page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeDownload(w http.ResponseWriter, res types.Result) {
	ct := res.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	name := res.Filename
	if name == "" {
		name = "download"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(name))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}
