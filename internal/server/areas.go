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
)

// createAreaInput holds the decoded body of POST /v1/areas.
type createAreaInput struct {
	Name  string `json:"name"`
	Order *int   `json:"order"`
}

// updateAreaInput holds the decoded body of PATCH /v1/areas/{id}.
// Nil pointer fields mean "don't change".
type updateAreaInput struct {
	Name  *string `json:"name"`
	Order *int    `json:"order"`
}

func (s *ProcessMapServer) createArea(ctx context.Context, in createAreaInput) (*model.Area, error) {
	if in.Name == "" {
		return nil, inputError("name is required")
	}
	if in.Order != nil && *in.Order < 0 {
		return nil, inputError("order must be non-negative")
	}

	order := 0
	if in.Order != nil {
		order = *in.Order
	} else {
		// Append after the current last area. Gaps from deletions are fine;
		// order only needs to sort, not to be contiguous.
		areas, err := s.store.ListAreas(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("list areas: %w", err)
		}
		for _, a := range areas {
			if a.Order >= order {
				order = a.Order + 1
			}
		}
	}

	id, err := idgen.NewAreaID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	area := &model.Area{
		ID:        id,
		Name:      in.Name,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateArea(ctx, area); err != nil {
		return nil, fmt.Errorf("create area: %w", err)
	}

	return area, nil
}

func (s *ProcessMapServer) updateArea(ctx context.Context, id string, in updateAreaInput) (*model.Area, error) {
	area, err := s.store.GetArea(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: area %s", model.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get area: %w", err)
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, inputError("name must not be empty")
		}
		area.Name = *in.Name
	}
	if in.Order != nil {
		if *in.Order < 0 {
			return nil, inputError("order must be non-negative")
		}
		area.Order = *in.Order
	}

	if err := s.store.UpdateArea(ctx, area); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: area %s", model.ErrNotFound, id)
		}
		return nil, fmt.Errorf("update area: %w", err)
	}

	return area, nil
}

// deleteArea removes an area; the store cascades the delete to every process
// referencing it.
func (s *ProcessMapServer) deleteArea(ctx context.Context, id string) error {
	if err := s.store.DeleteArea(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: area %s", model.ErrNotFound, id)
		}
		return fmt.Errorf("delete area: %w", err)
	}
	return nil
}

// reorderAreas assigns each listed area its index as the new display order,
// all in one transaction so a reader never sees a half-applied sequence.
func (s *ProcessMapServer) reorderAreas(ctx context.Context, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return inputError("orderedIds must not be empty")
	}

	err := s.store.RunInTransaction(ctx, func(tx store.Store) error {
		return tx.ReorderAreas(ctx, orderedIDs)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: unknown area in orderedIds", model.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("reorder areas: %w", err)
	}
	return nil
}

func (s *ProcessMapServer) listAreas(ctx context.Context) ([]*model.Area, error) {
	areas, err := s.store.ListAreas(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	if areas == nil {
		areas = []*model.Area{}
	}
	return areas, nil
}
