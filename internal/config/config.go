package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config amr-data (HTTP API) configuration, loaded from the environment.
type Config struct {
	HTTP struct {
		Addr string
	}
	DBEnabled bool
	Database  DatabaseConfig
	Log       struct {
		Level  string
		Format string
	}
	// SeedDemoData only applies to the in-memory backend (DB disabled or
	// unreachable): loads catalogs plus twelve months of generated data.
	SeedDemoData bool
	Glass        GlassConfig
}

// DatabaseConfig PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN returns the lib/pq connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// GlassConfig external surveillance feed (GLASS-style export API)
type GlassConfig struct {
	Enabled bool
	BaseURL string
	APIKey  string
	// SyncDays how far back each feed pull reaches
	SyncDays int
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// Default to true: if the DB is unavailable at startup, amr-data
	// falls back to the in-memory backend so the dashboard still works
	// with plain `go run`.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "amr")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.SeedDemoData = getEnv("SEED_DEMO_DATA", "true") == "true"

	cfg.Glass.Enabled = getEnv("GLASS_ENABLED", "false") == "true"
	cfg.Glass.BaseURL = getEnv("GLASS_BASE_URL", "")
	cfg.Glass.APIKey = getEnv("GLASS_API_KEY", "")
	cfg.Glass.SyncDays = parseInt(getEnv("GLASS_SYNC_DAYS", "30"), 30)

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
