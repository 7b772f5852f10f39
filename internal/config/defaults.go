// Package config contains compile-time defaults for newsdb.
// Edit these values and recompile to tune behavior.
package config

import "time"

// =============================================================================
// DATABASE DEFAULTS
// =============================================================================

const (
	// DBDriver is the database driver to use
	DBDriver = "mysql"

	// DBHost is used when DB_HOST is not set
	DBHost = "localhost"

	// DBPort is the MySQL/MariaDB default port
	DBPort = 3306

	// DBTimeout bounds the dial and the initial ping
	DBTimeout = 10 * time.Second

	// DBConnMaxLifetime is how long the single connection can be reused
	DBConnMaxLifetime = 30 * time.Minute
)

// =============================================================================
// CLI DEFAULTS
// =============================================================================

const (
	// EnvFile is loaded into the environment before config is read, if present
	EnvFile = ".env"

	// LogLevel is the zerolog level when --verbose is not given
	LogLevel = "info"
)
