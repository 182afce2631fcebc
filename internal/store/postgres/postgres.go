// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/procmap/internal/model"
	"github.com/groblegark/procmap/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateArea(ctx context.Context, area *model.Area) error {
	return queryCreateArea(ctx, s.db, area)
}

func (s *PostgresStore) GetArea(ctx context.Context, id string) (*model.Area, error) {
	return queryGetArea(ctx, s.db, id)
}

func (s *PostgresStore) ListAreas(ctx context.Context, withProcesses bool) ([]*model.Area, error) {
	return queryListAreas(ctx, s.db, withProcesses)
}

func (s *PostgresStore) UpdateArea(ctx context.Context, area *model.Area) error {
	return queryUpdateArea(ctx, s.db, area)
}

func (s *PostgresStore) DeleteArea(ctx context.Context, id string) error {
	return queryDeleteArea(ctx, s.db, id)
}

func (s *PostgresStore) ReorderAreas(ctx context.Context, orderedIDs []string) error {
	return queryReorderAreas(ctx, s.db, orderedIDs)
}

func (s *PostgresStore) CreateProcess(ctx context.Context, p *model.Process) error {
	return queryCreateProcess(ctx, s.db, p)
}

func (s *PostgresStore) GetProcess(ctx context.Context, id string) (*model.Process, error) {
	return queryGetProcess(ctx, s.db, id)
}

func (s *PostgresStore) ListProcesses(ctx context.Context) ([]*model.Process, error) {
	return queryListProcesses(ctx, s.db)
}

func (s *PostgresStore) UpdateProcess(ctx context.Context, p *model.Process) error {
	return queryUpdateProcess(ctx, s.db, p)
}

func (s *PostgresStore) SetProcessParent(ctx context.Context, id string, parentID *string) error {
	return querySetProcessParent(ctx, s.db, id, parentID)
}

func (s *PostgresStore) DeleteProcesses(ctx context.Context, ids []string) (int, error) {
	return queryDeleteProcesses(ctx, s.db, ids)
}

func (s *PostgresStore) MaxSiblingOrder(ctx context.Context, areaID string, parentID *string) (int, error) {
	return queryMaxSiblingOrder(ctx, s.db, areaID, parentID)
}

func (s *PostgresStore) DescendantIDs(ctx context.Context, id string) ([]string, error) {
	return queryDescendantIDs(ctx, s.db, id)
}

func (s *PostgresStore) Breadcrumb(ctx context.Context, id string) ([]*model.Process, error) {
	return queryBreadcrumb(ctx, s.db, id)
}

func (s *PostgresStore) UpdateLevels(ctx context.Context, updates []store.LevelUpdate) error {
	return queryUpdateLevels(ctx, s.db, updates)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateArea(ctx context.Context, area *model.Area) error {
	return queryCreateArea(ctx, s.tx, area)
}

func (s *txStore) GetArea(ctx context.Context, id string) (*model.Area, error) {
	return queryGetArea(ctx, s.tx, id)
}

func (s *txStore) ListAreas(ctx context.Context, withProcesses bool) ([]*model.Area, error) {
	return queryListAreas(ctx, s.tx, withProcesses)
}

func (s *txStore) UpdateArea(ctx context.Context, area *model.Area) error {
	return queryUpdateArea(ctx, s.tx, area)
}

func (s *txStore) DeleteArea(ctx context.Context, id string) error {
	return queryDeleteArea(ctx, s.tx, id)
}

func (s *txStore) ReorderAreas(ctx context.Context, orderedIDs []string) error {
	return queryReorderAreas(ctx, s.tx, orderedIDs)
}

func (s *txStore) CreateProcess(ctx context.Context, p *model.Process) error {
	return queryCreateProcess(ctx, s.tx, p)
}

func (s *txStore) GetProcess(ctx context.Context, id string) (*model.Process, error) {
	return queryGetProcess(ctx, s.tx, id)
}

func (s *txStore) ListProcesses(ctx context.Context) ([]*model.Process, error) {
	return queryListProcesses(ctx, s.tx)
}

func (s *txStore) UpdateProcess(ctx context.Context, p *model.Process) error {
	return queryUpdateProcess(ctx, s.tx, p)
}

func (s *txStore) SetProcessParent(ctx context.Context, id string, parentID *string) error {
	return querySetProcessParent(ctx, s.tx, id, parentID)
}

func (s *txStore) DeleteProcesses(ctx context.Context, ids []string) (int, error) {
	return queryDeleteProcesses(ctx, s.tx, ids)
}

func (s *txStore) MaxSiblingOrder(ctx context.Context, areaID string, parentID *string) (int, error) {
	return queryMaxSiblingOrder(ctx, s.tx, areaID, parentID)
}

func (s *txStore) DescendantIDs(ctx context.Context, id string) ([]string, error) {
	return queryDescendantIDs(ctx, s.tx, id)
}

func (s *txStore) Breadcrumb(ctx context.Context, id string) ([]*model.Process, error) {
	return queryBreadcrumb(ctx, s.tx, id)
}

func (s *txStore) UpdateLevels(ctx context.Context, updates []store.LevelUpdate) error {
	return queryUpdateLevels(ctx, s.tx, updates)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
