package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// SourceURL turns a plain directory path into a golang-migrate file source.
// Values that already carry a scheme are returned unchanged.
func SourceURL(dir string) string {
	if strings.Contains(dir, "://") {
		return dir
	}
	return "file://" + dir
}

// RunMigrations runs all pending database migrations from the given directory.
// If there are no new migrations to apply the function returns nil.
func RunMigrations(dsn string, migrationsDir string) error {
	m, err := migrate.New(SourceURL(migrationsDir), dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}

	return nil
}

// RunMigrationsDown rolls back the given number of migration steps, or all
// of them when steps is zero. If there is nothing to roll back it returns nil.
func RunMigrationsDown(dsn string, migrationsDir string, steps int) error {
	m, err := migrate.New(SourceURL(migrationsDir), dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations down: %w", err)
	}

	return nil
}

// MigrationVersion reports the currently applied schema version.
func MigrationVersion(dsn string, migrationsDir string) (version uint, dirty bool, err error) {
	m, err := migrate.New(SourceURL(migrationsDir), dsn)
	if err != nil {
		return 0, false, fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("postgres: read migration version: %w", err)
	}
	return version, dirty, nil
}
