package store

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Bootstrap creates the ledger schema on the write endpoint if it is absent.
// It is idempotent: running it again is a no-op. It is invoked on demand,
// never automatically.
func (s *Store) Bootstrap() error {
	if s.write == nil {
		return fmt.Errorf("write pool not initialized")
	}
	return BootstrapDB(s.write)
}

// BootstrapDB runs the schema migrations against a raw database handle.
// Useful for tests or when the connection comes from elsewhere.
func BootstrapDB(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// SchemaVersion returns the current migration version of the write endpoint.
func (s *Store) SchemaVersion() (int64, error) {
	if s.write == nil {
		return 0, fmt.Errorf("write pool not initialized")
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}

	return goose.GetDBVersion(s.write)
}
