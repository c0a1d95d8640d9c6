package config

import (
	"testing"

	"github.com/wichananm65/user-service/internal/database"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_AUTO_MIGRATE", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr())
	}
	if cfg.DB.Driver != database.DriverMySQL {
		t.Fatalf("expected mysql driver by default, got %q", cfg.DB.Driver)
	}
	if cfg.DB.Port != 3306 {
		t.Fatalf("expected default mysql port 3306, got %d", cfg.DB.Port)
	}
	if cfg.DB.Host != "127.0.0.1" {
		t.Fatalf("unexpected default host %q", cfg.DB.Host)
	}
	if cfg.AutoMigrate {
		t.Fatalf("auto migrate should be off by default")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected log defaults: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DB_DRIVER", "PGX")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "users")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")

	cfg := Load()
	if cfg.Addr() != ":3000" {
		t.Fatalf("expected :3000, got %q", cfg.Addr())
	}
	if cfg.DB.Driver != database.DriverPgx {
		t.Fatalf("expected pgx driver, got %q", cfg.DB.Driver)
	}
	if cfg.DB.Port != 5432 {
		t.Fatalf("expected postgres default port, got %d", cfg.DB.Port)
	}
	if cfg.DB.Host != "db.internal" || cfg.DB.User != "app" || cfg.DB.Password != "secret" || cfg.DB.Name != "users" {
		t.Fatalf("unexpected db config: %+v", cfg.DB)
	}
	if !cfg.AutoMigrate {
		t.Fatalf("expected auto migrate on")
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "console" {
		t.Fatalf("unexpected log config: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_PORT", "not-a-port")

	if got := Load().DB.Port; got != 3306 {
		t.Fatalf("expected fallback port 3306, got %d", got)
	}
}
