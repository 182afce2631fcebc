package snapshot

import (
	"context"
	"database/sql"
	"sort"

	"github.com/groblegark/procmap/internal/model"
	"github.com/groblegark/procmap/internal/store"
)

// mockStore is a minimal in-memory Store for export tests.
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

func (m *mockStore) CreateArea(_ context.Context, a *model.Area) error {
	m.areas[a.ID] = a
	return nil
}

func (m *mockStore) GetArea(_ context.Context, id string) (*model.Area, error) {
	a, ok := m.areas[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (m *mockStore) ListAreas(_ context.Context, _ bool) ([]*model.Area, error) {
	var result []*model.Area
	for _, a := range m.areas {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Order < result[j].Order })
	return result, nil
}

func (m *mockStore) UpdateArea(_ context.Context, a *model.Area) error {
	m.areas[a.ID] = a
	return nil
}

func (m *mockStore) DeleteArea(_ context.Context, id string) error {
	delete(m.areas, id)
	return nil
}

func (m *mockStore) ReorderAreas(_ context.Context, orderedIDs []string) error {
	for i, id := range orderedIDs {
		if a, ok := m.areas[id]; ok {
			a.Order = i
		}
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
	return p, nil
}

func (m *mockStore) ListProcesses(_ context.Context) ([]*model.Process, error) {
	var result []*model.Process
	for _, p := range m.processes {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Order < result[j].Order })
	return result, nil
}

func (m *mockStore) UpdateProcess(_ context.Context, p *model.Process) error {
	m.processes[p.ID] = p
	return nil
}

func (m *mockStore) SetProcessParent(_ context.Context, id string, parentID *string) error {
	if p, ok := m.processes[id]; ok {
		p.ParentID = parentID
	}
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

func (m *mockStore) MaxSiblingOrder(_ context.Context, _ string, _ *string) (int, error) {
	return -1, nil
}

func (m *mockStore) DescendantIDs(_ context.Context, id string) ([]string, error) {
	return []string{id}, nil
}

func (m *mockStore) Breadcrumb(_ context.Context, id string) ([]*model.Process, error) {
	if p, ok := m.processes[id]; ok {
		return []*model.Process{p}, nil
	}
	return nil, nil
}

func (m *mockStore) UpdateLevels(_ context.Context, updates []store.LevelUpdate) error {
	for _, u := range updates {
		if p, ok := m.processes[u.ID]; ok {
			p.Level = u.Level
		}
	}
	return nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }
