package store

import (
	"context"

	"github.com/groblegark/procmap/internal/model"
)

// LevelUpdate pairs a process id with its recomputed depth. Move applies a
// batch of these in one transaction so the cached level never drifts from
// the parent chain.
type LevelUpdate struct {
	ID    string
	Level int
}

// Store defines the persistence interface for the process map.
// Point lookups return sql.ErrNoRows when the row is absent; the server
// layer converts that to model.ErrNotFound.
type Store interface {
	// Area CRUD
	CreateArea(ctx context.Context, area *model.Area) error
	GetArea(ctx context.Context, id string) (*model.Area, error)
	ListAreas(ctx context.Context, withProcesses bool) ([]*model.Area, error)
	UpdateArea(ctx context.Context, area *model.Area) error
	DeleteArea(ctx context.Context, id string) error
	ReorderAreas(ctx context.Context, orderedIDs []string) error

	// Process CRUD
	CreateProcess(ctx context.Context, p *model.Process) error
	GetProcess(ctx context.Context, id string) (*model.Process, error)
	ListProcesses(ctx context.Context) ([]*model.Process, error)
	UpdateProcess(ctx context.Context, p *model.Process) error
	SetProcessParent(ctx context.Context, id string, parentID *string) error
	DeleteProcesses(ctx context.Context, ids []string) (int, error)
	MaxSiblingOrder(ctx context.Context, areaID string, parentID *string) (int, error)

	// Hierarchy traversal
	DescendantIDs(ctx context.Context, id string) ([]string, error)
	Breadcrumb(ctx context.Context, id string) ([]*model.Process, error)
	UpdateLevels(ctx context.Context, updates []LevelUpdate) error

	// RunInTransaction executes fn against a transactional view of the store,
	// committing on success and rolling back on error.
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Close releases the underlying connection.
	Close() error
}
