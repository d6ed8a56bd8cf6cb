package config

import (
	"os"

	"github.com/matthiasdebernardini/lowmain/internal/apperr"
)

// Connection describes how to reach the graph database.
type Connection struct {
	URI      string
	Username string
	Password string
	Database string
}

// Overrides carries per-invocation flag values. Empty fields fall through to
// the environment and then to built-in defaults.
type Overrides struct {
	URI      string
	Username string
	Password string
	Database string
}

const (
	defaultURI      = "bolt://localhost:7687"
	defaultUsername = "neo4j"
	defaultDatabase = "neo4j"
)

// Environment variable names consulted when no flag override is present.
const (
	EnvURI      = "NEO4J_URI"
	EnvUsername = "NEO4J_USER"
	EnvPassword = "NEO4J_PASSWORD"
	EnvDatabase = "NEO4J_DB"
)

// Resolve produces a Connection from flag > env > default precedence per
// field. The password has no default; its absence is a classified
// configuration error raised before any network attempt.
func Resolve(o Overrides) (Connection, error) {
	conn := Connection{
		URI:      resolve(o.URI, EnvURI, defaultURI),
		Username: resolve(o.Username, EnvUsername, defaultUsername),
		Password: resolve(o.Password, EnvPassword, ""),
		Database: resolve(o.Database, EnvDatabase, defaultDatabase),
	}

	if conn.Password == "" {
		return Connection{}, apperr.ConnectionNotConfigured()
	}

	return conn, nil
}

func resolve(override, envKey, fallback string) string {
	if override != "" {
		return override
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}
