// Package migrations embeds the users table schema for each supported
// driver and applies it with golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"

	"github.com/wichananm65/user-service/internal/database"
)

//go:embed mysql/*.sql postgres/*.sql
var files embed.FS

// Source returns the embedded migration files for driver.
func Source(driver string) (source.Driver, error) {
	var dir string
	switch driver {
	case database.DriverMySQL:
		dir = "mysql"
	case database.DriverPgx:
		dir = "postgres"
	default:
		return nil, fmt.Errorf("migrations: unsupported driver %q", driver)
	}
	return iofs.New(files, dir)
}

// New prepares a migrator for the configured database.
func New(cfg database.Config, log zerolog.Logger) (*migrate.Migrate, error) {
	src, err := Source(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dbURL, err := cfg.MigrationURL()
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return nil, fmt.Errorf("migrations: init: %w", err)
	}
	m.Log = &migrateLogger{log: log}
	return m, nil
}

// Up applies all pending migrations. Being already up to date is not an error.
func Up(cfg database.Config, log zerolog.Logger) error {
	m, err := New(cfg, log)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: up: %w", err)
	}
	return nil
}

type migrateLogger struct {
	log     zerolog.Logger
	verbose bool
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.log.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *migrateLogger) Verbose() bool { return l.verbose }
