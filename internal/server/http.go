package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/groblegark/procmap/internal/model"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *ProcessMapServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/health", s.handleHealth)

	mux.HandleFunc("POST /v1/areas", s.handleCreateArea)
	mux.HandleFunc("GET /v1/areas", s.handleListAreas)
	mux.HandleFunc("GET /v1/areas/{id}", s.handleGetArea)
	mux.HandleFunc("PATCH /v1/areas/{id}", s.handleUpdateArea)
	mux.HandleFunc("DELETE /v1/areas/{id}", s.handleDeleteArea)
	mux.HandleFunc("PATCH /v1/areas/reorder", s.handleReorderAreas)

	mux.HandleFunc("GET /v1/processes/tree", s.handleGetTree)
	mux.HandleFunc("POST /v1/processes", s.handleCreateProcess)
	mux.HandleFunc("GET /v1/processes/{id}", s.handleGetProcess)
	mux.HandleFunc("PATCH /v1/processes/{id}", s.handleUpdateProcess)
	mux.HandleFunc("PATCH /v1/processes/{id}/move", s.handleMoveProcess)
	mux.HandleFunc("DELETE /v1/processes/{id}", s.handleDeleteProcess)
	mux.HandleFunc("GET /v1/processes/{id}/breadcrumb", s.handleBreadcrumb)

	mux.HandleFunc("GET /v1/events/stream", s.handleEventStream)
	return AuthMiddleware(authToken, mux)
}

// handleHealth handles GET /v1/health.
func (s *ProcessMapServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeDomainError maps a lifecycle error to an HTTP status. Invalid input
// and hierarchy violations are client errors; a detected integrity violation
// means the stored graph itself is broken, which is on us.
func writeDomainError(w http.ResponseWriter, err error) {
	var ie inputError
	switch {
	case errors.As(err, &ie):
		writeError(w, http.StatusBadRequest, ie.Error())
	case errors.Is(err, model.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrInvalidParent), errors.Is(err, model.ErrCycleDetected):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
