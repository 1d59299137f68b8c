package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lexreed/docgraph/internal/element"
	"github.com/lexreed/docgraph/internal/task"
)

// handleSubmitTask queues an asynchronous hierarchy build. The body is
// recognition JSON; doc_id, title and summaries can be set via query
// parameters.
func (s *Server) handleSubmitTask(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return
	}

	elements, err := element.Decode(bytes.NewReader(body))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(elements) == 0 {
		jsonError(w, "recognition input contains no elements", http.StatusBadRequest)
		return
	}

	docID := r.URL.Query().Get("doc_id")
	if docID == "" {
		docID = task.ContentID(body)
	}
	title := r.URL.Query().Get("title")
	enableSummaries := s.summariesEnabled(r)

	t := task.New(docID, title, elements, enableSummaries)
	if err := s.runner.Submit(t); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"task_id":  t.ID,
		"doc_id":   t.DocID,
		"status":   t.Snapshot().Status,
		"poll_url": fmt.Sprintf("/api/tasks/%s", t.ID),
	})
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	t := s.runner.Get(taskID)
	if t == nil {
		jsonError(w, "task not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t.Snapshot())
}

// handleTaskResult returns the stored hierarchy for a completed task.
func (s *Server) handleTaskResult(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	t := s.runner.Get(taskID)
	if t == nil {
		jsonError(w, "task not found", http.StatusNotFound)
		return
	}
	snap := t.Snapshot()
	if snap.Status != task.StatusCompleted {
		jsonError(w, fmt.Sprintf("task is %s, result not available", snap.Status), http.StatusConflict)
		return
	}

	doc, err := s.runner.Store().Get(r.Context(), snap.DocID)
	if err != nil {
		jsonError(w, "failed to load result: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"tasks":       s.runner.List(),
		"queue_depth": s.runner.QueueDepth(),
	})
}
