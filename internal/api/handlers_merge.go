package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/pagemerge/internal/pipeline"
)

// mergeRequest is the JSON body for both async and sync merges.
type mergeRequest struct {
	Source     string `json:"source"`
	OutputDir  string `json:"output_dir"`
	MaxChars   int    `json:"max_chars,omitempty"`
	PadWidth   int    `json:"pad_width,omitempty"`
	Translate  bool   `json:"translate,omitempty"`
	TargetLang string `json:"target_lang,omitempty"`
}

func (req *mergeRequest) validate() string {
	if req.Source == "" {
		return "source is required"
	}
	if req.OutputDir == "" {
		return "output_dir is required"
	}
	if req.MaxChars < 0 {
		return "max_chars must be positive"
	}
	return ""
}

func decodeMergeRequest(w http.ResponseWriter, r *http.Request) (*mergeRequest, bool) {
	var req mergeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return nil, false
	}
	return &req, true
}

// handleMerge enqueues an asynchronous merge job.
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMergeRequest(w, r)
	if !ok {
		return
	}

	job, err := s.orch.Submit(pipeline.Request{
		SourcePath: req.Source,
		OutputDir:  req.OutputDir,
		MaxChars:   req.MaxChars,
		PadWidth:   req.PadWidth,
		Translate:  req.Translate,
		TargetLang: req.TargetLang,
	})
	if err != nil {
		jsonError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id": job.ID,
		"status": job.Snapshot().Status,
	})
}

// handleMergeSync runs the merge in-request and returns the final state.
// Intended for small documents; the request context bounds the work.
func (s *Server) handleMergeSync(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMergeRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	job := s.orch.NewJob(pipeline.Request{
		SourcePath: req.Source,
		OutputDir:  req.OutputDir,
		MaxChars:   req.MaxChars,
		PadWidth:   req.PadWidth,
		Translate:  req.Translate,
		TargetLang: req.TargetLang,
	})
	s.orch.Process(ctx, job)

	snap := job.Snapshot()
	status := http.StatusOK
	if snap.Status == pipeline.StatusFailed {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, snap)
}

// handleMergeStatus reports the current state of a job.
func (s *Server) handleMergeStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orch.GetJob(jobID)
	if job == nil {
		jsonError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
