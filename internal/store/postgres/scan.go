package postgres

import (
	"database/sql"

	"github.com/groblegark/procmap/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanArea scans a single row into a model.Area.
// The row must contain columns in the order defined by areaColumns.
func scanArea(row scannable) (*model.Area, error) {
	var a model.Area
	err := row.Scan(&a.ID, &a.Name, &a.Order, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// scanAreas scans multiple rows into a slice of model.Area pointers.
func scanAreas(rows *sql.Rows) ([]*model.Area, error) {
	var areas []*model.Area
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return areas, nil
}

// scanProcess scans a single row into a model.Process.
// The row must contain columns in the order defined by processColumns.
func scanProcess(row scannable) (*model.Process, error) {
	var p model.Process
	var (
		parentID      sql.NullString
		tools         sql.NullString
		responsible   sql.NullString
		documentation sql.NullString
		status        sql.NullString
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.AreaID,
		&parentID,
		&p.Level,
		&p.Order,
		&tools,
		&responsible,
		&documentation,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		id := parentID.String
		p.ParentID = &id
	}
	p.Tools = tools.String
	p.Responsible = responsible.String
	p.Documentation = documentation.String
	p.Status = model.ProcessStatus(status.String)

	return &p, nil
}

// scanProcesses scans multiple rows into a slice of model.Process pointers.
func scanProcesses(rows *sql.Rows) ([]*model.Process, error) {
	var processes []*model.Process
	for rows.Next() {
		p, err := scanProcess(rows)
		if err != nil {
			return nil, err
		}
		processes = append(processes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return processes, nil
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullStringPtr converts a *string to sql.NullString; nil is null.
func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
