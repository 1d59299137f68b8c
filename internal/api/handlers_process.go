package api

import (
	"encoding/json"
	"net/http"

	"github.com/lexreed/docgraph/internal/element"
	"github.com/lexreed/docgraph/internal/hierarchy"
	"github.com/lexreed/docgraph/internal/summary"
)

// buildResponse is the synchronous build payload.
type buildResponse struct {
	Stats     hierarchy.Stats   `json:"stats"`
	Hierarchy *hierarchy.Serial `json:"hierarchy"`
}

// handleBuildHierarchy builds a hierarchy from recognition JSON in the
// request body and returns it without persisting. Summaries run unless
// disabled globally or via ?summaries=false.
func (s *Server) handleBuildHierarchy(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	elements, err := element.Decode(r.Body)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(elements) == 0 {
		jsonError(w, "recognition input contains no elements", http.StatusBadRequest)
		return
	}

	res := hierarchy.Build(elements)
	if s.summariesEnabled(r) {
		orch := summary.NewOrchestrator(s.claude, s.log, s.cfg.MaxConcurrentSummaries)
		orch.Summarize(r.Context(), res.Root)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(buildResponse{
		Stats:     hierarchy.CollectStats(res),
		Hierarchy: res.Root.Serialize(),
	})
}

// summariesEnabled resolves the per-request summary setting against the
// global configuration. A missing credential always wins.
func (s *Server) summariesEnabled(r *http.Request) bool {
	if !s.cfg.EnableSummaries || s.claude == nil {
		return false
	}
	return r.URL.Query().Get("summaries") != "false"
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
