package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	apierrors "github.com/rokucommunity/release-dashboard/pkg/errors"
	"github.com/rokucommunity/release-dashboard/pkg/projects"
	"github.com/rokucommunity/release-dashboard/pkg/render"
	"github.com/rokucommunity/release-dashboard/pkg/status"
)

type projectView struct {
	Key string `json:"key"`
	projects.Project
	DependsOn []string `json:"dependsOn"`
}

type errorBody struct {
	Code      apierrors.Code `json:"code"`
	Message   string         `json:"message"`
	RequestID string         `json:"requestId,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) listProjects(w http.ResponseWriter, _ *http.Request) {
	reg := s.Registry()
	out := make([]projectView, 0, reg.Len())
	for _, p := range reg.Projects() {
		deps := reg.DependencyKeys(p.Key())
		if deps == nil {
			deps = []string{}
		}
		out = append(out, projectView{Key: p.Key(), Project: p, DependsOn: deps})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) releaseOrder(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Registry().ReleaseOrder())
}

func (s *Server) projectStatus(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("project")
	if key != "" {
		if err := apierrors.ValidateProjectKey(key); err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		if _, ok := s.Registry().Get(key); !ok {
			writeError(w, r, s.logger, apierrors.New(apierrors.ErrCodeProjectNotFound, "no project %s", key))
			return
		}
	}

	got, err := s.statuses(r.Context(), boolParam(r, "refresh", false))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if key == "" {
		writeJSON(w, http.StatusOK, got)
		return
	}
	for _, st := range got {
		if st.Key() == key {
			writeJSON(w, http.StatusOK, st)
			return
		}
	}
	writeError(w, r, s.logger, apierrors.New(apierrors.ErrCodeProjectNotFound, "no status for %s", key))
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	if err := apierrors.ValidateFormat(format, "svg", "dot"); err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	var statuses []*status.ProjectStatus
	if boolParam(r, "status", true) {
		got, err := s.statuses(r.Context(), boolParam(r, "refresh", false))
		if err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		statuses = got
	}
	dot := render.ToDOT(s.Registry(), statuses, render.Options{Detailed: boolParam(r, "detailed", true)})

	if format == "dot" {
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		w.Write([]byte(dot))
		return
	}
	svg, err := s.renderSVG(r.Context(), dot)
	if err != nil {
		writeError(w, r, s.logger, apierrors.Wrap(apierrors.ErrCodeInternal, err, "render graph"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(svg)
}

func boolParam(r *http.Request, name string, def bool) bool {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func notFound(path string) error {
	return apierrors.New(apierrors.ErrCodeNotFound, "no route for %s", path)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	e := apierrors.From(err)
	code := e.Code.HTTPStatus()
	id, _ := RequestIDFromContext(r.Context())
	if code >= http.StatusInternalServerError {
		logger.Error("request failed", "path", r.URL.Path, "request_id", id, "err", err)
	}
	writeJSON(w, code, errorBody{Code: e.Code, Message: e.Message, RequestID: id})
}
