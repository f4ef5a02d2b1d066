package server

import (
	"net/http"

	"github.com/Vibhor2702/pr-review/internal/forge"
	"github.com/Vibhor2702/pr-review/internal/output"
	"github.com/Vibhor2702/pr-review/internal/pipeline"
	"github.com/Vibhor2702/pr-review/internal/providers"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Review ---

type reviewRequest struct {
	Provider string `json:"provider"`
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Number   int    `json:"pr_number"`
	Token    string `json:"token,omitempty"`
	NoLLM    bool   `json:"no_llm,omitempty"`
	Post     bool   `json:"post,omitempty"`
}

func (r reviewRequest) validate() string {
	switch {
	case r.Provider == "":
		return "provider is required"
	case r.Owner == "":
		return "owner is required"
	case r.Repo == "":
		return "repo is required"
	case r.Number <= 0:
		return "pr_number must be positive"
	}
	return ""
}

func (r reviewRequest) options() pipeline.Options {
	return pipeline.Options{
		Provider: r.Provider,
		Owner:    r.Owner,
		Repo:     r.Repo,
		Number:   r.Number,
		Token:    r.Token,
		NoLLM:    r.NoLLM,
		Post:     r.Post,
	}
}

func (s *Server) handleReviewPR(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	rec, err := s.runFn(r.Context(), req.options(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// --- Capabilities ---

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"forges":  forge.Names(),
		"llms":    providers.Names(),
		"formats": output.Formats(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Redacted())
}

// --- Artifacts ---

func (s *Server) handleArtifactList(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(summaries),
		"reviews": summaries,
	})
}

func (s *Server) handleArtifactGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, err := s.store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "review not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
