package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/groblegark/procmap/internal/idgen"
	"github.com/groblegark/procmap/internal/model"
	"github.com/groblegark/procmap/internal/store"
	"github.com/groblegark/procmap/internal/tree"
)

// createProcessInput holds the decoded body of POST /v1/processes.
type createProcessInput struct {
	Name          string  `json:"name"`
	AreaID        string  `json:"areaId"`
	ParentID      *string `json:"parentId"`
	Tools         string  `json:"tools"`
	Responsible   string  `json:"responsible"`
	Documentation string  `json:"documentation"`
	Status        string  `json:"status"`
	Order         *int    `json:"order"`
}

// updateProcessInput holds the decoded body of PATCH /v1/processes/{id}.
// Nil pointer fields mean "don't change". Area and parent are deliberately
// absent; reparenting goes through the move operation only.
type updateProcessInput struct {
	Name          *string `json:"name"`
	Tools         *string `json:"tools"`
	Responsible   *string `json:"responsible"`
	Documentation *string `json:"documentation"`
	Status        *string `json:"status"`
	Order         *int    `json:"order"`
}

// createProcess validates the input against the hierarchy invariants and
// inserts a new process. Level is derived from the parent; order defaults to
// one past the current max among siblings.
func (s *ProcessMapServer) createProcess(ctx context.Context, in createProcessInput) (*model.Process, error) {
	if in.Name == "" {
		return nil, inputError("name is required")
	}
	if in.AreaID == "" {
		return nil, inputError("areaId is required")
	}
	status := model.ProcessStatus(in.Status)
	if !status.IsValid() {
		return nil, inputError(fmt.Sprintf("invalid status %q", in.Status))
	}
	if in.Order != nil && *in.Order < 0 {
		return nil, inputError("order must be non-negative")
	}

	if _, err := s.store.GetArea(ctx, in.AreaID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inputError(fmt.Sprintf("area %s not found", in.AreaID))
		}
		return nil, fmt.Errorf("get area: %w", err)
	}

	level := 0
	if in.ParentID != nil {
		parent, err := s.store.GetProcess(ctx, *in.ParentID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: parent %s does not exist", model.ErrInvalidParent, *in.ParentID)
		}
		if err != nil {
			return nil, fmt.Errorf("get parent: %w", err)
		}
		if parent.AreaID != in.AreaID {
			return nil, fmt.Errorf("%w: parent %s belongs to a different area", model.ErrInvalidParent, parent.ID)
		}
		level = parent.Level + 1
	}

	order := 0
	if in.Order != nil {
		order = *in.Order
	} else {
		max, err := s.store.MaxSiblingOrder(ctx, in.AreaID, in.ParentID)
		if err != nil {
			return nil, err
		}
		order = max + 1
	}

	id, err := idgen.NewProcessID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &model.Process{
		ID:            id,
		Name:          in.Name,
		AreaID:        in.AreaID,
		ParentID:      in.ParentID,
		Level:         level,
		Order:         order,
		Tools:         in.Tools,
		Responsible:   in.Responsible,
		Documentation: in.Documentation,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateProcess(ctx, p); err != nil {
		return nil, fmt.Errorf("create process: %w", err)
	}

	return p, nil
}

// updateProcess applies the supplied fields to an existing process. It never
// touches areaId or parentId.
func (s *ProcessMapServer) updateProcess(ctx context.Context, id string, in updateProcessInput) (*model.Process, error) {
	p, err := s.store.GetProcess(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: process %s", model.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get process: %w", err)
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, inputError("name must not be empty")
		}
		p.Name = *in.Name
	}
	if in.Tools != nil {
		p.Tools = *in.Tools
	}
	if in.Responsible != nil {
		p.Responsible = *in.Responsible
	}
	if in.Documentation != nil {
		p.Documentation = *in.Documentation
	}
	if in.Status != nil {
		status := model.ProcessStatus(*in.Status)
		if !status.IsValid() {
			return nil, inputError(fmt.Sprintf("invalid status %q", *in.Status))
		}
		p.Status = status
	}
	if in.Order != nil {
		if *in.Order < 0 {
			return nil, inputError("order must be non-negative")
		}
		p.Order = *in.Order
	}

	if err := s.store.UpdateProcess(ctx, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: process %s", model.ErrNotFound, id)
		}
		return nil, fmt.Errorf("update process: %w", err)
	}

	return p, nil
}

// moveProcess reparents a process. The whole operation runs in one
// transaction: validation, the parent swap, and the level recomputation for
// every descendant commit or fail together.
func (s *ProcessMapServer) moveProcess(ctx context.Context, id string, newParentID *string) (*model.Process, error) {
	var moved *model.Process

	err := s.store.RunInTransaction(ctx, func(tx store.Store) error {
		p, err := tx.GetProcess(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: process %s", model.ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("get process: %w", err)
		}

		newLevel := 0
		if newParentID != nil {
			if *newParentID == id {
				return fmt.Errorf("%w: cannot move %s under itself", model.ErrCycleDetected, id)
			}

			parent, err := tx.GetProcess(ctx, *newParentID)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: parent %s", model.ErrNotFound, *newParentID)
			}
			if err != nil {
				return fmt.Errorf("get new parent: %w", err)
			}
			if parent.AreaID != p.AreaID {
				return fmt.Errorf("%w: parent %s belongs to area %s, process %s to area %s",
					model.ErrInvalidParent, parent.ID, parent.AreaID, p.ID, p.AreaID)
			}

			descendants, err := tx.DescendantIDs(ctx, id)
			if err != nil {
				return err
			}
			for _, did := range descendants {
				if did == *newParentID {
					return fmt.Errorf("%w: %s is a descendant of %s", model.ErrCycleDetected, *newParentID, id)
				}
			}

			newLevel = parent.Level + 1
		}

		if err := tx.SetProcessParent(ctx, id, newParentID); err != nil {
			return fmt.Errorf("set parent: %w", err)
		}

		updates, err := subtreeLevels(ctx, tx, id, newLevel)
		if err != nil {
			return err
		}
		if err := tx.UpdateLevels(ctx, updates); err != nil {
			return fmt.Errorf("update levels: %w", err)
		}

		moved, err = tx.GetProcess(ctx, id)
		if err != nil {
			return fmt.Errorf("reload process: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return moved, nil
}

// subtreeLevels walks the subtree rooted at id and assigns each node its new
// depth, root at rootLevel. The visited set turns a latent parent cycle into
// a detected integrity violation instead of an endless walk.
func subtreeLevels(ctx context.Context, tx store.Store, id string, rootLevel int) ([]store.LevelUpdate, error) {
	all, err := tx.ListProcesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	children := make(map[string][]string, len(all))
	for _, p := range all {
		if p.ParentID != nil {
			children[*p.ParentID] = append(children[*p.ParentID], p.ID)
		}
	}

	updates := []store.LevelUpdate{{ID: id, Level: rootLevel}}
	visited := map[string]bool{id: true}

	for i := 0; i < len(updates); i++ {
		cur := updates[i]
		for _, childID := range children[cur.ID] {
			if visited[childID] {
				return nil, fmt.Errorf("%w: cycle through %s", model.ErrIntegrityViolation, childID)
			}
			visited[childID] = true
			updates = append(updates, store.LevelUpdate{ID: childID, Level: cur.Level + 1})
		}
	}

	return updates, nil
}

// deleteProcess removes a process together with its entire descendant
// subtree in a single transaction. It returns the ids that were targeted.
func (s *ProcessMapServer) deleteProcess(ctx context.Context, id string) ([]string, error) {
	var removed []string

	err := s.store.RunInTransaction(ctx, func(tx store.Store) error {
		if _, err := tx.GetProcess(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: process %s", model.ErrNotFound, id)
			}
			return fmt.Errorf("get process: %w", err)
		}

		ids, err := tx.DescendantIDs(ctx, id)
		if err != nil {
			return err
		}

		if _, err := tx.DeleteProcesses(ctx, ids); err != nil {
			return fmt.Errorf("delete processes: %w", err)
		}
		removed = ids
		return nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}

// getTree fetches every process ordered by sibling order and assembles the
// nested forest. A non-empty query prunes the forest to matching subtrees.
func (s *ProcessMapServer) getTree(ctx context.Context, query string) ([]*model.ProcessNode, error) {
	processes, err := s.store.ListProcesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	forest := tree.Assemble(processes)
	if query != "" {
		forest = tree.Filter(forest, query)
	}
	if forest == nil {
		forest = []*model.ProcessNode{}
	}
	return forest, nil
}

// breadcrumb returns the root-first path to the given process.
func (s *ProcessMapServer) breadcrumb(ctx context.Context, id string) ([]*model.Process, error) {
	path, err := s.store.Breadcrumb(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("breadcrumb: %w", err)
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: process %s", model.ErrNotFound, id)
	}

	// The path must start at a root and contain no repeats; anything else
	// means the stored parent graph has a cycle.
	if path[0].ParentID != nil {
		return nil, fmt.Errorf("%w: breadcrumb for %s does not reach a root", model.ErrIntegrityViolation, id)
	}
	seen := make(map[string]bool, len(path))
	for _, p := range path {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate ancestor %s", model.ErrIntegrityViolation, p.ID)
		}
		seen[p.ID] = true
	}

	return path, nil
}
