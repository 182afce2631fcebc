package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/groblegark/procmap/internal/events"
)

// handleCreateArea handles POST /v1/areas.
func (s *ProcessMapServer) handleCreateArea(w http.ResponseWriter, r *http.Request) {
	var in createAreaInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	area, err := s.createArea(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicAreaCreated, events.AreaCreated{Area: area})

	writeJSON(w, http.StatusCreated, area)
}

// handleListAreas handles GET /v1/areas.
func (s *ProcessMapServer) handleListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := s.listAreas(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list areas")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"areas": areas,
		"total": len(areas),
	})
}

// handleGetArea handles GET /v1/areas/{id}.
func (s *ProcessMapServer) handleGetArea(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	area, err := s.store.GetArea(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "area not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get area")
		return
	}

	writeJSON(w, http.StatusOK, area)
}

// handleUpdateArea handles PATCH /v1/areas/{id}.
func (s *ProcessMapServer) handleUpdateArea(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateAreaInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	area, err := s.updateArea(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicAreaUpdated, events.AreaUpdated{Area: area})

	writeJSON(w, http.StatusOK, area)
}

// handleDeleteArea handles DELETE /v1/areas/{id}. Every process in the area
// goes with it.
func (s *ProcessMapServer) handleDeleteArea(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.deleteArea(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicAreaDeleted, events.AreaDeleted{AreaID: id})

	writeJSON(w, http.StatusOK, map[string]string{"message": "area " + id + " deleted"})
}

// handleReorderAreas handles PATCH /v1/areas/reorder.
func (s *ProcessMapServer) handleReorderAreas(w http.ResponseWriter, r *http.Request) {
	var in struct {
		OrderedIDs []string `json:"orderedIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.reorderAreas(r.Context(), in.OrderedIDs); err != nil {
		writeDomainError(w, err)
		return
	}

	s.publish(r.Context(), events.TopicAreasReordered, events.AreasReordered{OrderedIDs: in.OrderedIDs})

	areas, err := s.listAreas(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list areas")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"areas": areas})
}
