package server

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/groblegark/procmap/internal/events"
	"github.com/groblegark/procmap/internal/model"
	"github.com/groblegark/procmap/internal/store"
)

// mockStore is an in-memory Store for handler tests.
type mockStore struct {
	areas     map[string]*model.Area
	processes map[string]*model.Process
}

func newMockStore() *mockStore {
	return &mockStore{
		areas:     make(map[string]*model.Area),
		processes: make(map[string]*model.Process),
	}
}

// newTestServer wires a ProcessMapServer to a fresh mock store and a noop
// publisher.
func newTestServer() (*ProcessMapServer, *mockStore) {
	ms := newMockStore()
	return NewProcessMapServer(ms, &events.NoopPublisher{}), ms
}

func (m *mockStore) CreateArea(_ context.Context, area *model.Area) error {
	m.areas[area.ID] = area
	return nil
}

func (m *mockStore) GetArea(_ context.Context, id string) (*model.Area, error) {
	a, ok := m.areas[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *a
	return &clone, nil
}

func (m *mockStore) ListAreas(ctx context.Context, withProcesses bool) ([]*model.Area, error) {
	var result []*model.Area
	for _, a := range m.areas {
		clone := *a
		if withProcesses {
			procs, _ := m.ListProcesses(ctx)
			for _, p := range procs {
				if p.AreaID == a.ID {
					clone.Processes = append(clone.Processes, p)
				}
			}
		}
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockStore) UpdateArea(_ context.Context, area *model.Area) error {
	if _, ok := m.areas[area.ID]; !ok {
		return sql.ErrNoRows
	}
	area.UpdatedAt = time.Now().UTC()
	m.areas[area.ID] = area
	return nil
}

func (m *mockStore) DeleteArea(_ context.Context, id string) error {
	if _, ok := m.areas[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.areas, id)
	for pid, p := range m.processes {
		if p.AreaID == id {
			delete(m.processes, pid)
		}
	}
	return nil
}

func (m *mockStore) ReorderAreas(_ context.Context, orderedIDs []string) error {
	for i, id := range orderedIDs {
		a, ok := m.areas[id]
		if !ok {
			return sql.ErrNoRows
		}
		a.Order = i
	}
	return nil
}

func (m *mockStore) CreateProcess(_ context.Context, p *model.Process) error {
	m.processes[p.ID] = p
	return nil
}

func (m *mockStore) GetProcess(_ context.Context, id string) (*model.Process, error) {
	p, ok := m.processes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (m *mockStore) ListProcesses(_ context.Context) ([]*model.Process, error) {
	var result []*model.Process
	for _, p := range m.processes {
		clone := *p
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockStore) UpdateProcess(_ context.Context, p *model.Process) error {
	if _, ok := m.processes[p.ID]; !ok {
		return sql.ErrNoRows
	}
	p.UpdatedAt = time.Now().UTC()
	m.processes[p.ID] = p
	return nil
}

func (m *mockStore) SetProcessParent(_ context.Context, id string, parentID *string) error {
	p, ok := m.processes[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.ParentID = parentID
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockStore) DeleteProcesses(_ context.Context, ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := m.processes[id]; ok {
			delete(m.processes, id)
			n++
		}
	}
	return n, nil
}

func (m *mockStore) MaxSiblingOrder(_ context.Context, areaID string, parentID *string) (int, error) {
	max := -1
	for _, p := range m.processes {
		if p.AreaID != areaID {
			continue
		}
		if !sameParent(p.ParentID, parentID) {
			continue
		}
		if p.Order > max {
			max = p.Order
		}
	}
	return max, nil
}

func (m *mockStore) DescendantIDs(_ context.Context, id string) ([]string, error) {
	ids := []string{id}
	seen := map[string]bool{id: true}
	for i := 0; i < len(ids); i++ {
		for _, p := range m.processes {
			if p.ParentID != nil && *p.ParentID == ids[i] && !seen[p.ID] {
				seen[p.ID] = true
				ids = append(ids, p.ID)
			}
		}
	}
	return ids, nil
}

func (m *mockStore) Breadcrumb(_ context.Context, id string) ([]*model.Process, error) {
	var path []*model.Process
	seen := make(map[string]bool)
	cur, ok := m.processes[id]
	for ok && !seen[cur.ID] {
		seen[cur.ID] = true
		clone := *cur
		path = append([]*model.Process{&clone}, path...)
		if cur.ParentID == nil {
			break
		}
		cur, ok = m.processes[*cur.ParentID]
	}
	return path, nil
}

func (m *mockStore) UpdateLevels(_ context.Context, updates []store.LevelUpdate) error {
	for _, u := range updates {
		p, ok := m.processes[u.ID]
		if !ok {
			return sql.ErrNoRows
		}
		p.Level = u.Level
	}
	return nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// seedArea inserts an area directly into the mock store.
func seedArea(ms *mockStore, id, name string, order int) *model.Area {
	now := time.Now().UTC()
	a := &model.Area{ID: id, Name: name, Order: order, CreatedAt: now, UpdatedAt: now}
	ms.areas[id] = a
	return a
}

// seedProcess inserts a process directly into the mock store.
func seedProcess(ms *mockStore, id, name, areaID string, parentID *string, level, order int) *model.Process {
	now := time.Now().UTC()
	p := &model.Process{
		ID:        id,
		Name:      name,
		AreaID:    areaID,
		ParentID:  parentID,
		Level:     level,
		Order:     order,
		Status:    model.StatusManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
	ms.processes[id] = p
	return p
}

func strPtr(s string) *string { return &s }

func containsAll(haystack []string, want ...string) bool {
	for _, w := range want {
		found := false
		for _, h := range haystack {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func hasSubstring(s, sub string) bool { return strings.Contains(s, sub) }
