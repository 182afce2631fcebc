package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/groblegark/procmap/internal/model"
)

// A parent ring (a's parent is b, b's parent is a) can only exist when the
// stored graph is already corrupt. These tests pin down that traversal over
// such data reports an integrity violation instead of looping or writing.

func TestSubtreeLevelsCorruptGraph(t *testing.T) {
	_, ms := newTestServer()

	seedArea(ms, "ar-a", "A", 0)
	seedProcess(ms, "pr-a", "First", "ar-a", strPtr("pr-b"), 1, 0)
	seedProcess(ms, "pr-b", "Second", "ar-a", strPtr("pr-a"), 2, 0)

	updates, err := subtreeLevels(context.Background(), ms, "pr-a", 0)
	if !errors.Is(err, model.ErrIntegrityViolation) {
		t.Fatalf("err = %v, want ErrIntegrityViolation", err)
	}
	if updates != nil {
		t.Errorf("updates = %v, want nil when the walk aborts", updates)
	}

	// Nothing was written: the seeded levels are untouched.
	if ms.processes["pr-a"].Level != 1 || ms.processes["pr-b"].Level != 2 {
		t.Error("levels must not change when the walk aborts")
	}
}

func TestHTTPBreadcrumbCorruptGraph(t *testing.T) {
	srv, ms := newTestServer()
	handler := srv.NewHTTPHandler("")

	seedArea(ms, "ar-a", "A", 0)
	seedProcess(ms, "pr-a", "First", "ar-a", strPtr("pr-b"), 1, 0)
	seedProcess(ms, "pr-b", "Second", "ar-a", strPtr("pr-a"), 2, 0)

	rec := doRequest(t, handler, http.MethodGet, "/v1/processes/pr-a/breadcrumb", nil, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
	if !hasSubstring(rec.Body.String(), "integrity violation") {
		t.Errorf("body = %s, want an integrity violation error", rec.Body.String())
	}
}

func TestBreadcrumbRejectsDuplicateAncestor(t *testing.T) {
	srv, ms := newTestServer()

	seedArea(ms, "ar-a", "A", 0)
	seedProcess(ms, "pr-root", "Root", "ar-a", nil, 0, 0)
	seedProcess(ms, "pr-kid", "Kid", "ar-a", strPtr("pr-root"), 1, 0)

	// A store that hands back a repeated ancestor must be caught even when
	// the path starts at a proper root.
	dup := &duplicatingStore{mockStore: ms}
	srv.store = dup

	_, err := srv.breadcrumb(context.Background(), "pr-kid")
	if !errors.Is(err, model.ErrIntegrityViolation) {
		t.Fatalf("err = %v, want ErrIntegrityViolation", err)
	}
}

// duplicatingStore repeats the last breadcrumb entry, simulating a traversal
// result that revisits a node.
type duplicatingStore struct {
	*mockStore
}

func (d *duplicatingStore) Breadcrumb(ctx context.Context, id string) ([]*model.Process, error) {
	path, err := d.mockStore.Breadcrumb(ctx, id)
	if err != nil || len(path) == 0 {
		return path, err
	}
	return append(path, path[len(path)-1]), nil
}
