// Package config provides centralized configuration for the candidate report.
// It loads configuration from environment variables with defaults that
// reproduce the fixed file layout, and validates all settings on startup
// to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Files    FilesConfig
	Logging  LoggingConfig
	Database DatabaseConfig
	Archive  ArchiveConfig
}

// FilesConfig holds the source and destination CSV paths.
type FilesConfig struct {
	// Input is the semicolon-delimited candidate list (default: AppAcademy_Candidates.csv)
	Input string `env:"CANDIDATES_INPUT" default:"AppAcademy_Candidates.csv"`

	// Output is where the name-sorted export is written (default: Sorted_AppAcademy_Candidates.csv)
	Output string `env:"CANDIDATES_OUTPUT" default:"Sorted_AppAcademy_Candidates.csv"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// DatabaseConfig holds the optional archive database settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Archiving is disabled when empty.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`
}

// ArchiveConfig holds settings for copying a run into the database.
type ArchiveConfig struct {
	// Table is the archive table name (default: candidate_archive)
	Table string `env:"ARCHIVE_TABLE" default:"candidate_archive"`

	// Timeout bounds the whole archive step (default: 30s)
	Timeout time.Duration `env:"ARCHIVE_TIMEOUT" default:"30s"`
}

// ArchiveEnabled reports whether a database URL was configured.
func (c *Config) ArchiveEnabled() bool {
	return c.Database.URL != ""
}
