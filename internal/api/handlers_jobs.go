package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Piqzaa/HTML-to-Twig/internal/convert"
	"github.com/Piqzaa/HTML-to-Twig/internal/pipeline"
)

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// completedResult writes an error response and returns false unless the
// job exists and has finished.
func (s *Server) completedResult(w http.ResponseWriter, r *http.Request) (*pipeline.Job, convert.Result, bool) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil, convert.Result{}, false
	}
	res, ok := job.Result()
	if !ok {
		jsonError(w, fmt.Sprintf("job is %s", job.Snapshot().Status), http.StatusConflict)
		return nil, convert.Result{}, false
	}
	return job, res, true
}

func (s *Server) handleJobOutput(w http.ResponseWriter, r *http.Request) {
	job, res, ok := s.completedResult(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", job.Snapshot().Output))
	w.Write([]byte(res.Output))
}

// handleJobReport returns the report as JSON, or in the plain-text layout
// when format=text.
func (s *Server) handleJobReport(w http.ResponseWriter, r *http.Request) {
	_, res, ok := s.completedResult(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(res.Report.Text()))
		return
	}
	writeJSON(w, http.StatusOK, res.Report)
}
