package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SchemaVersion is the counter store schema this build reads and writes.
const SchemaVersion uint = 1

// RunMigrations brings the counter store at dbPath up to SchemaVersion and
// returns the version it ends at. Dirty stores and stores written by a newer
// build are refused rather than touched.
func RunMigrations(dbPath string) (uint, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("open counter store %s: %w", dbPath, err)
	}
	defer conn.Close()

	m, err := newMigrator(conn)
	if err != nil {
		return 0, fmt.Errorf("counter store %s: %w", dbPath, err)
	}
	defer m.Close()

	current, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
	case err != nil:
		return 0, fmt.Errorf("read counter store %s version: %w", dbPath, err)
	case dirty:
		return current, fmt.Errorf("counter store %s is dirty at version %d", dbPath, current)
	case current > SchemaVersion:
		return current, fmt.Errorf("counter store %s has schema version %d, newer than %d", dbPath, current, SchemaVersion)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migrate counter store %s: %w", dbPath, err)
	}
	return SchemaVersion, nil
}

// newMigrator pairs the embedded kv migrations with conn. Closing the
// migrator closes conn.
func newMigrator(conn *sql.DB) (*migrate.Migrate, error) {
	driver, err := sqlite.WithInstance(conn, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("sqlite migrate driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("load kv migrations: %w", err)
	}
	return migrate.NewWithInstance("iofs", src, "sqlite", driver)
}
