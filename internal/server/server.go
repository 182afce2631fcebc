// Package server implements the process-map lifecycle operations and the
// HTTP/JSON surface that exposes them.
package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/groblegark/procmap/internal/events"
	"github.com/groblegark/procmap/internal/store"
)

// ProcessMapServer orchestrates area and process lifecycle operations on top
// of the store, enforcing hierarchy invariants (same-area parents, no cycles,
// level consistency) before anything is written.
type ProcessMapServer struct {
	store     store.Store
	publisher events.Publisher
	sseHub    *sseHub
}

// NewProcessMapServer returns a new ProcessMapServer backed by the given
// store and publisher.
func NewProcessMapServer(s store.Store, p events.Publisher) *ProcessMapServer {
	return &ProcessMapServer{
		store:     s,
		publisher: p,
		sseHub:    newSSEHub(),
	}
}

// publish emits an event to NATS and to connected SSE clients. Both are
// best-effort; the mutation has already committed, so failures are logged
// and do not surface to the caller.
func (s *ProcessMapServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
	s.broadcastEvent(topic, event)
}

// broadcastEvent fans an event out to SSE clients.
func (s *ProcessMapServer) broadcastEvent(topic string, event any) {
	if s.sseHub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event for SSE broadcast", "topic", topic, "error", err)
		return
	}
	s.sseHub.broadcast(topic, payload)
}

// inputError indicates invalid user input.
// The HTTP layer maps this to a 400 response.
type inputError string

func (e inputError) Error() string { return string(e) }
