package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/groblegark/procmap/internal/events"
)

// handleCreateProcess handles POST /v1/processes.
func (s *ProcessMapServer) handleCreateProcess(w http.ResponseWriter, r *http.Request) {
	var in createProcessInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := s.createProcess(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicProcessCreated, events.ProcessCreated{Process: p})

	writeJSON(w, http.StatusCreated, p)
}

// handleGetProcess handles GET /v1/processes/{id}.
func (s *ProcessMapServer) handleGetProcess(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	p, err := s.store.GetProcess(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "process not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get process")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// handleUpdateProcess handles PATCH /v1/processes/{id}.
func (s *ProcessMapServer) handleUpdateProcess(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateProcessInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := s.updateProcess(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicProcessUpdated, events.ProcessUpdated{Process: p})

	writeJSON(w, http.StatusOK, p)
}

// handleMoveProcess handles PATCH /v1/processes/{id}/move. A null parentId in
// the body promotes the process to a root.
func (s *ProcessMapServer) handleMoveProcess(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in struct {
		ParentID *string `json:"parentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	before, err := s.store.GetProcess(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "process not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get process")
		return
	}
	oldParentID := before.ParentID

	p, err := s.moveProcess(r.Context(), id, in.ParentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicProcessMoved, events.ProcessMoved{
		Process:     p,
		OldParentID: oldParentID,
	})

	writeJSON(w, http.StatusOK, p)
}

// handleDeleteProcess handles DELETE /v1/processes/{id}. The response lists
// every id removed by the cascade.
func (s *ProcessMapServer) handleDeleteProcess(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	removed, err := s.deleteProcess(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicProcessDeleted, events.ProcessDeleted{
		ProcessID:  id,
		DeletedIDs: removed,
	})

	writeJSON(w, http.StatusOK, map[string]any{"deletedIds": removed})
}

// handleGetTree handles GET /v1/processes/tree.
func (s *ProcessMapServer) handleGetTree(w http.ResponseWriter, r *http.Request) {
	forest, err := s.getTree(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build tree")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tree": forest})
}

// handleBreadcrumb handles GET /v1/processes/{id}/breadcrumb.
func (s *ProcessMapServer) handleBreadcrumb(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	path, err := s.breadcrumb(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"breadcrumb": path})
}
