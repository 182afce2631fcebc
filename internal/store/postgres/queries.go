package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/groblegark/procmap/internal/model"
	"github.com/groblegark/procmap/internal/store"
)

// areaColumns is the column list used for SELECT statements on the areas table.
const areaColumns = `id, name, "order", created_at, updated_at`

// processColumns is the column list used for SELECT statements on the
// processes table.
const processColumns = `id, name, area_id, parent_id, level, "order",
	tools, responsible, documentation, status, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateArea(ctx context.Context, db executor, a *model.Area) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO areas (id, name, "order", created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Name, a.Order, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func queryGetArea(ctx context.Context, db executor, id string) (*model.Area, error) {
	row := db.QueryRowContext(ctx, `SELECT `+areaColumns+` FROM areas WHERE id = $1`, id)
	return scanArea(row)
}

func queryListAreas(ctx context.Context, db executor, withProcesses bool) ([]*model.Area, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+areaColumns+` FROM areas ORDER BY "order" ASC`)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer rows.Close()

	areas, err := scanAreas(rows)
	if err != nil {
		return nil, fmt.Errorf("scan areas: %w", err)
	}

	if !withProcesses || len(areas) == 0 {
		return areas, nil
	}

	// Attach processes in a single pass instead of one query per area.
	processes, err := queryListProcesses(ctx, db)
	if err != nil {
		return nil, err
	}
	byArea := make(map[string][]*model.Process)
	for _, p := range processes {
		byArea[p.AreaID] = append(byArea[p.AreaID], p)
	}
	for _, a := range areas {
		a.Processes = byArea[a.ID]
	}

	return areas, nil
}

func queryUpdateArea(ctx context.Context, db executor, a *model.Area) error {
	return db.QueryRowContext(ctx, `
		UPDATE areas SET name = $2, "order" = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		a.ID, a.Name, a.Order,
	).Scan(&a.UpdatedAt)
}

func queryDeleteArea(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM areas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryReorderAreas(ctx context.Context, db executor, orderedIDs []string) error {
	for idx, id := range orderedIDs {
		res, err := db.ExecContext(ctx, `
			UPDATE areas SET "order" = $2, updated_at = NOW() WHERE id = $1`,
			id, idx,
		)
		if err != nil {
			return fmt.Errorf("reorder area %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return sql.ErrNoRows
		}
	}
	return nil
}

func queryCreateProcess(ctx context.Context, db executor, p *model.Process) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO processes (
			id, name, area_id, parent_id, level, "order",
			tools, responsible, documentation, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12
		)`,
		p.ID,
		p.Name,
		p.AreaID,
		nullStringPtr(p.ParentID),
		p.Level,
		p.Order,
		nullString(p.Tools),
		nullString(p.Responsible),
		nullString(p.Documentation),
		nullString(string(p.Status)),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func queryGetProcess(ctx context.Context, db executor, id string) (*model.Process, error) {
	row := db.QueryRowContext(ctx, `SELECT `+processColumns+` FROM processes WHERE id = $1`, id)
	return scanProcess(row)
}

func queryListProcesses(ctx context.Context, db executor) ([]*model.Process, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+processColumns+` FROM processes ORDER BY "order" ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	defer rows.Close()
	return scanProcesses(rows)
}

func queryUpdateProcess(ctx context.Context, db executor, p *model.Process) error {
	return db.QueryRowContext(ctx, `
		UPDATE processes SET
			name = $2,
			"order" = $3,
			tools = $4,
			responsible = $5,
			documentation = $6,
			status = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID,
		p.Name,
		p.Order,
		nullString(p.Tools),
		nullString(p.Responsible),
		nullString(p.Documentation),
		nullString(string(p.Status)),
	).Scan(&p.UpdatedAt)
}

func querySetProcessParent(ctx context.Context, db executor, id string, parentID *string) error {
	res, err := db.ExecContext(ctx, `
		UPDATE processes SET parent_id = $2, updated_at = NOW() WHERE id = $1`,
		id, nullStringPtr(parentID),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryDeleteProcesses(ctx context.Context, db executor, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := db.ExecContext(ctx, `DELETE FROM processes WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func queryMaxSiblingOrder(ctx context.Context, db executor, areaID string, parentID *string) (int, error) {
	// IS NOT DISTINCT FROM treats NULL = NULL as true, so one query covers
	// both root siblings and children of a given parent.
	var max int
	err := db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX("order"), -1) FROM processes
		WHERE area_id = $1 AND parent_id IS NOT DISTINCT FROM $2`,
		areaID, nullStringPtr(parentID),
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max sibling order: %w", err)
	}
	return max, nil
}

// queryDescendantIDs returns the id of the given process and every
// transitive child. UNION (not UNION ALL) deduplicates rows, which
// guarantees termination even if the stored parent graph ever contained a
// cycle.
func queryDescendantIDs(ctx context.Context, db executor, id string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		WITH RECURSIVE descendants AS (
			SELECT id FROM processes WHERE id = $1
			UNION
			SELECT p.id FROM processes p
			INNER JOIN descendants d ON p.parent_id = d.id
		)
		SELECT id FROM descendants`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("descendant ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var did string
		if err := rows.Scan(&did); err != nil {
			return nil, err
		}
		ids = append(ids, did)
	}
	return ids, rows.Err()
}

// queryBreadcrumb returns the path from the root ancestor down to and
// including the given process, ordered root-first. As with descendants,
// UNION deduplicates so a latent parent cycle cannot loop the query; the
// server layer detects such a result and reports an integrity violation.
func queryBreadcrumb(ctx context.Context, db executor, id string) ([]*model.Process, error) {
	rows, err := db.QueryContext(ctx, `
		WITH RECURSIVE breadcrumb AS (
			SELECT `+processColumns+` FROM processes WHERE id = $1
			UNION
			SELECT p.id, p.name, p.area_id, p.parent_id, p.level, p."order",
				p.tools, p.responsible, p.documentation, p.status, p.created_at, p.updated_at
			FROM processes p
			INNER JOIN breadcrumb b ON p.id = b.parent_id
		)
		SELECT `+processColumns+` FROM breadcrumb ORDER BY level ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("breadcrumb: %w", err)
	}
	defer rows.Close()
	return scanProcesses(rows)
}

func queryUpdateLevels(ctx context.Context, db executor, updates []store.LevelUpdate) error {
	for _, u := range updates {
		res, err := db.ExecContext(ctx, `
			UPDATE processes SET level = $2, updated_at = NOW() WHERE id = $1`,
			u.ID, u.Level,
		)
		if err != nil {
			return fmt.Errorf("update level for %s: %w", u.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return sql.ErrNoRows
		}
	}
	return nil
}
