// Package database opens the relational store and exposes the minimal
// query/execute contract the repositories depend on.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	DriverMySQL  = "mysql"
	DriverPgx    = "pgx"
	DriverSQLite = "sqlite3"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ Querier = (*sql.DB)(nil)

// Config describes how to reach the store.
type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// DefaultPort returns the conventional server port for driver.
func DefaultPort(driver string) int {
	if driver == DriverPgx {
		return 5432
	}
	return 3306
}

// DSN builds the data source name understood by the registered database/sql driver.
func (c Config) DSN() (string, error) {
	switch c.Driver {
	case DriverMySQL:
		return c.mysqlConfig().FormatDSN(), nil
	case DriverPgx:
		return c.postgresURL("postgres"), nil
	default:
		return "", fmt.Errorf("database: unsupported driver %q", c.Driver)
	}
}

// MigrationURL builds the URL golang-migrate expects for the same database.
func (c Config) MigrationURL() (string, error) {
	switch c.Driver {
	case DriverMySQL:
		cfg := c.mysqlConfig()
		cfg.MultiStatements = true
		return "mysql://" + cfg.FormatDSN(), nil
	case DriverPgx:
		return c.postgresURL("pgx5"), nil
	default:
		return "", fmt.Errorf("database: unsupported driver %q", c.Driver)
	}
}

func (c Config) addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort(c.Driver)
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

func (c Config) mysqlConfig() *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.addr()
	cfg.DBName = c.Name
	cfg.ParseTime = true
	return cfg
}

func (c Config) postgresURL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.addr(),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Open creates the process-wide handle. It does not contact the server;
// use Ping for that.
func Open(cfg Config) (*sql.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// Ping verifies connectivity.
func Ping(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}
