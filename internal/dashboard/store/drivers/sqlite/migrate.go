package sqlite

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/trigger/internal/dashboard/store/drivers/sqlite/migrations"
	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// migrationsTable keeps the dashboard's schema version apart from anything
// else that shares the database file.
const migrationsTable = "trigger_schema_migrations"

func (s *Store) migrator() (*migrate.Migrate, error) {
	driver, err := sqlitemigrate.WithInstance(s.db, &sqlitemigrate.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return nil, fmt.Errorf("sqlite: migration driver: %w", err)
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("sqlite: migration source: %w", err)
	}

	return migrate.NewWithInstance("iofs", src, "sqlite", driver)
}

// ApplyMigrations brings the schema up to the newest embedded migration.
// A database left dirty by an interrupted migration is reported, not repaired.
func (s *Store) ApplyMigrations() error {
	m, err := s.migrator()
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		var dirty migrate.ErrDirty
		if errors.As(err, &dirty) {
			return fmt.Errorf("sqlite: schema version %d is dirty, fix it by hand: %w", dirty.Version, err)
		}
		return fmt.Errorf("sqlite: apply migrations: %w", err)
	}
	return nil
}

// SchemaVersion reports the applied migration version. It is 0 before the
// first migration.
func (s *Store) SchemaVersion() (uint, error) {
	m, err := s.migrator()
	if err != nil {
		return 0, err
	}

	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return version, err
}
