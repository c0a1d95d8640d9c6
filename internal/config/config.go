package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/wichananm65/user-service/internal/database"
)

// Config holds environment-driven configuration.
type Config struct {
	Port        string
	DB          database.Config
	AutoMigrate bool
	LogLevel    string
	LogFormat   string
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads configuration from environment variables. Callers load any
// .env file beforehand.
func Load() Config {
	driver := strings.ToLower(envOr("DB_DRIVER", database.DriverMySQL))

	return Config{
		Port: envOr("PORT", "8080"),
		DB: database.Config{
			Driver:   driver,
			Host:     envOr("DB_HOST", "127.0.0.1"),
			Port:     envInt("DB_PORT", database.DefaultPort(driver)),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		AutoMigrate: envBool("DB_AUTO_MIGRATE"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		LogFormat:   envOr("LOG_FORMAT", "json"),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}
