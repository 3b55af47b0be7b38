package storage

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MIGRATION_SCHEME is the url scheme of the pgx v5 migration driver
const MIGRATION_SCHEME = "pgx5"

// migrationLogger prints migration logs with zap
type migrationLogger struct {
	logger *zap.SugaredLogger
}

// Printf logs at debug level
func (l migrationLogger) Printf(format string, values ...any) {
	l.logger.Debugf(strings.TrimSpace(format), values...)
}

// Verbose is false, migrate logs are enough at debug level
func (l migrationLogger) Verbose() bool {
	return false
}

// MigrationURL returns the url for the migration driver from a postgresql url
func MigrationURL(url string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(url, scheme) {
			return MIGRATION_SCHEME + "://" + strings.TrimPrefix(url, scheme)
		}
	}

	return url
}

// newMigrate returns a migration over the embedded scripts
func newMigrate(url string, logger *zap.SugaredLogger) (*migrate.Migrate, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	source, errSource := iofs.New(migrations, "migrations")
	if errSource != nil {
		return nil, fmt.Errorf("reading migrations: %w", errSource)
	}

	result, errMigrate := migrate.NewWithSourceInstance("iofs", source, MigrationURL(url))
	if errMigrate != nil {
		return nil, fmt.Errorf("creating migration: %w", errMigrate)
	}

	result.Log = migrationLogger{logger: logger}
	return result, nil
}

// closeMigrate closes source and database of a migration
func closeMigrate(m *migrate.Migrate) error {
	errSource, errDatabase := m.Close()
	return errors.Join(errSource, errDatabase)
}

// RunMigrations applies all pending migrations and returns the resulting version
func RunMigrations(url string, logger *zap.SugaredLogger) (uint, error) {
	m, err := newMigrate(url, logger)
	if err != nil {
		return 0, err
	}

	defer closeMigrate(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("running migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, err
	} else if dirty {
		return version, fmt.Errorf("migration %d is dirty", version)
	}

	return version, nil
}

// RollbackMigrations reverts steps migrations and returns the resulting version, 0 for none
func RollbackMigrations(url string, steps int, logger *zap.SugaredLogger) (uint, error) {
	if steps <= 0 {
		return 0, fmt.Errorf("invalid steps count %d", steps)
	}

	m, err := newMigrate(url, logger)
	if err != nil {
		return 0, err
	}

	defer closeMigrate(m)

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("rolling back migrations: %w", err)
	}

	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}

	return version, err
}
