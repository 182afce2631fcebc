package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/groblegark/procmap/internal/model"
	"github.com/groblegark/procmap/internal/store"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

// areaRowColumns is the column list for scanArea results.
var areaRowColumns = []string{"id", "name", "order", "created_at", "updated_at"}

// processRowColumns is the column list for scanProcess results.
var processRowColumns = []string{
	"id", "name", "area_id", "parent_id", "level", "order",
	"tools", "responsible", "documentation", "status", "created_at", "updated_at",
}

// addProcessRow adds a minimal process row to a sqlmock.Rows.
func addProcessRow(rows *sqlmock.Rows, id, name, areaID string, parentID any, level, order int, now time.Time) *sqlmock.Rows {
	return rows.AddRow(id, name, areaID, parentID, level, order, nil, nil, nil, "MANUAL", now, now)
}

func TestScanHelpers(t *testing.T) {
	// nullString
	if nullString("").Valid {
		t.Error("nullString(\"\") should be invalid")
	}
	if ns := nullString("hello"); !ns.Valid || ns.String != "hello" {
		t.Errorf("nullString(\"hello\") = %v", ns)
	}

	// nullStringPtr
	if nullStringPtr(nil).Valid {
		t.Error("nullStringPtr(nil) should be invalid")
	}
	s := "pr-x"
	if ns := nullStringPtr(&s); !ns.Valid || ns.String != "pr-x" {
		t.Errorf("nullStringPtr = %v", ns)
	}
}

func TestQueryCreateArea(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	area := &model.Area{ID: "ar-test1", Name: "Sales", Order: 0, CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec("INSERT INTO areas").
		WithArgs("ar-test1", "Sales", 0, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryCreateArea(context.Background(), db, area); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryGetArea(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(areaRowColumns).AddRow("ar-test1", "Sales", 0, now, now)
	mock.ExpectQuery("SELECT .+ FROM areas WHERE id = \\$1").WithArgs("ar-test1").WillReturnRows(rows)

	area, err := queryGetArea(context.Background(), db, "ar-test1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if area.ID != "ar-test1" || area.Name != "Sales" {
		t.Fatalf("got id=%q name=%q", area.ID, area.Name)
	}
}

func TestQueryGetArea_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM areas WHERE id = \\$1").WithArgs("nonexistent").WillReturnError(sql.ErrNoRows)

	_, err := queryGetArea(context.Background(), db, "nonexistent")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryListAreasWithProcesses(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	areaRows := sqlmock.NewRows(areaRowColumns).
		AddRow("ar-a", "Sales", 0, now, now).
		AddRow("ar-b", "Support", 1, now, now)
	mock.ExpectQuery("SELECT .+ FROM areas ORDER BY \"order\" ASC").WillReturnRows(areaRows)

	procRows := sqlmock.NewRows(processRowColumns)
	addProcessRow(procRows, "pr-1", "Invoicing", "ar-a", nil, 0, 0, now)
	addProcessRow(procRows, "pr-2", "Tickets", "ar-b", nil, 0, 0, now)
	mock.ExpectQuery("SELECT .+ FROM processes ORDER BY").WillReturnRows(procRows)

	areas, err := queryListAreas(context.Background(), db, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(areas) != 2 {
		t.Fatalf("got %d areas, want 2", len(areas))
	}
	if len(areas[0].Processes) != 1 || areas[0].Processes[0].ID != "pr-1" {
		t.Errorf("first area processes = %+v", areas[0].Processes)
	}
	if len(areas[1].Processes) != 1 || areas[1].Processes[0].ID != "pr-2" {
		t.Errorf("second area processes = %+v", areas[1].Processes)
	}
}

func TestQueryUpdateArea(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	area := &model.Area{ID: "ar-test1", Name: "Renamed", Order: 2}

	mock.ExpectQuery("UPDATE areas SET").
		WithArgs("ar-test1", "Renamed", 2).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	if err := queryUpdateArea(context.Background(), db, area); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !area.UpdatedAt.Equal(now) {
		t.Errorf("updated_at not refreshed from RETURNING")
	}
}

func TestQueryDeleteArea_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM areas WHERE id = \\$1").
		WithArgs("nonexistent").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := queryDeleteArea(context.Background(), db, "nonexistent")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryReorderAreas(t *testing.T) {
	db, mock := newMockDB(t)
	for idx, id := range []string{"ar-c", "ar-a"} {
		mock.ExpectExec("UPDATE areas SET \"order\" = \\$2").
			WithArgs(id, idx).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	if err := queryReorderAreas(context.Background(), db, []string{"ar-c", "ar-a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryReorderAreas_UnknownID(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("UPDATE areas SET \"order\" = \\$2").
		WithArgs("ar-missing", 0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := queryReorderAreas(context.Background(), db, []string{"ar-missing"})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryCreateProcess(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	parent := "pr-root"
	p := &model.Process{
		ID: "pr-test1", Name: "Invoicing", AreaID: "ar-a", ParentID: &parent,
		Level: 1, Order: 0, Status: model.StatusManual, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO processes").
		WithArgs(
			"pr-test1", "Invoicing", "ar-a", nullStringPtr(&parent), 1, 0,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), nullString("MANUAL"), now, now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryCreateProcess(context.Background(), db, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryGetProcess(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(processRowColumns)
	addProcessRow(rows, "pr-test1", "Invoicing", "ar-a", "pr-root", 1, 0, now)
	mock.ExpectQuery("SELECT .+ FROM processes WHERE id = \\$1").WithArgs("pr-test1").WillReturnRows(rows)

	p, err := queryGetProcess(context.Background(), db, "pr-test1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "pr-test1" || p.AreaID != "ar-a" {
		t.Fatalf("got id=%q area=%q", p.ID, p.AreaID)
	}
	if p.ParentID == nil || *p.ParentID != "pr-root" {
		t.Errorf("parentID = %v, want pr-root", p.ParentID)
	}
	if p.Status != model.StatusManual {
		t.Errorf("status = %q, want MANUAL", p.Status)
	}
}

func TestQueryUpdateProcess(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	p := &model.Process{
		ID: "pr-test1", Name: "Renamed", Order: 3,
		Tools: "ERP", Status: model.StatusSystemic,
	}

	mock.ExpectQuery("UPDATE processes SET").
		WithArgs(
			"pr-test1", "Renamed", 3,
			nullString("ERP"), sqlmock.AnyArg(), sqlmock.AnyArg(), nullString("SYSTEMIC"),
		).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	if err := queryUpdateProcess(context.Background(), db, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQuerySetProcessParent(t *testing.T) {
	db, mock := newMockDB(t)

	// Promote to root: parent becomes NULL.
	mock.ExpectExec("UPDATE processes SET parent_id = \\$2").
		WithArgs("pr-test1", nullStringPtr(nil)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := querySetProcessParent(context.Background(), db, "pr-test1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryDeleteProcesses(t *testing.T) {
	db, mock := newMockDB(t)
	ids := []string{"pr-a", "pr-b", "pr-c"}

	mock.ExpectExec("DELETE FROM processes WHERE id = ANY\\(\\$1\\)").
		WithArgs(pq.Array(ids)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := queryDeleteProcesses(context.Background(), db, ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted %d rows, want 3", n)
	}
}

func TestQueryDeleteProcesses_Empty(t *testing.T) {
	db, _ := newMockDB(t)

	// No ids means no query at all.
	n, err := queryDeleteProcesses(context.Background(), db, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("deleted %d rows, want 0", n)
	}
}

func TestQueryMaxSiblingOrder(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(\"order\"\\), -1\\) FROM processes").
		WithArgs("ar-a", nullStringPtr(nil)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4))

	max, err := queryMaxSiblingOrder(context.Background(), db, "ar-a", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if max != 4 {
		t.Errorf("max = %d, want 4", max)
	}
}

func TestQueryDescendantIDs(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id"}).
		AddRow("pr-a").
		AddRow("pr-b").
		AddRow("pr-c")
	mock.ExpectQuery("WITH RECURSIVE descendants AS").WithArgs("pr-a").WillReturnRows(rows)

	ids, err := queryDescendantIDs(context.Background(), db, "pr-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 3 || ids[0] != "pr-a" {
		t.Fatalf("ids = %v", ids)
	}
}

func TestQueryBreadcrumb(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(processRowColumns)
	addProcessRow(rows, "pr-a", "a", "ar-a", nil, 0, 0, now)
	addProcessRow(rows, "pr-b", "b", "ar-a", "pr-a", 1, 0, now)
	addProcessRow(rows, "pr-c", "c", "ar-a", "pr-b", 2, 0, now)
	mock.ExpectQuery("WITH RECURSIVE breadcrumb AS").WithArgs("pr-c").WillReturnRows(rows)

	path, err := queryBreadcrumb(context.Background(), db, "pr-c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 3 {
		t.Fatalf("path has %d entries, want 3", len(path))
	}
	if path[0].ID != "pr-a" || path[2].ID != "pr-c" {
		t.Errorf("path = [%s %s %s], want root first", path[0].ID, path[1].ID, path[2].ID)
	}
}

func TestQueryUpdateLevels(t *testing.T) {
	db, mock := newMockDB(t)
	updates := []store.LevelUpdate{{ID: "pr-b", Level: 1}, {ID: "pr-c", Level: 2}}

	for _, u := range updates {
		mock.ExpectExec("UPDATE processes SET level = \\$2").
			WithArgs(u.ID, u.Level).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	if err := queryUpdateLevels(context.Background(), db, updates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryUpdateLevels_MissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("UPDATE processes SET level = \\$2").
		WithArgs("pr-missing", 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := queryUpdateLevels(context.Background(), db, []store.LevelUpdate{{ID: "pr-missing", Level: 1}})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestRunInTransactionCommit(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE processes SET parent_id = \\$2").
		WithArgs("pr-a", nullStringPtr(nil)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		return tx.SetProcessParent(context.Background(), "pr-a", nil)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunInTransactionRollback(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("boom")
	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}
