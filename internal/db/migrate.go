package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/oeis-tools/collab/internal/util"
	"github.com/oeis-tools/collab/pkg/logger"
)

// Migrate applies all pending schema migrations. The migration files are
// read from MIGRATIONS_PATH (default "migrations").
func Migrate(databaseURL string) error {
	path := util.GetEnvString("MIGRATIONS_PATH", "migrations")

	m, err := migrate.New("file://"+path, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open migrations at '%s': %w", path, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("[DB] Schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("[DB] Schema migrations applied")
	return nil
}
