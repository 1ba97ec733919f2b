// Package common provides shared utilities for Tally
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Tally
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	Auth        AuthConfig    `toml:"auth"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds storage backend configuration.
type StorageConfig struct {
	Backend   string          `toml:"backend"` // "surrealdb" or "memory"
	SurrealDB SurrealDBConfig `toml:"surrealdb"`
}

// SurrealDBConfig holds SurrealDB connection configuration.
type SurrealDBConfig struct {
	Address   string `toml:"address"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
}

// AuthConfig holds session and OAuth configuration.
type AuthConfig struct {
	SessionSecret string        `toml:"session_secret"`
	SessionExpiry string        `toml:"session_expiry"` // duration string, default "168h"
	AppURL        string        `toml:"app_url"`        // public base URL, used to build OAuth redirect URIs
	Google        OAuthProvider `toml:"google"`
}

// OAuthProvider holds OAuth client credentials for an external provider.
type OAuthProvider struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// GetSessionExpiry parses and returns the session expiry duration.
func (c *AuthConfig) GetSessionExpiry() time.Duration {
	d, err := time.ParseDuration(c.SessionExpiry)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

// RedirectURI returns the OAuth callback URL derived from the app URL.
func (c *AuthConfig) RedirectURI() string {
	return strings.TrimRight(c.AppURL, "/") + "/auth/callback"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Backend: "surrealdb",
			SurrealDB: SurrealDBConfig{
				Address:   "ws://localhost:8000/rpc",
				Username:  "root",
				Password:  "root",
				Namespace: "tally",
				Database:  "tally",
			},
		},
		Auth: AuthConfig{
			SessionSecret: "dev-session-secret-change-in-production",
			SessionExpiry: "168h",
			AppURL:        "http://localhost:8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TALLY_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("TALLY_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("TALLY_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("TALLY_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if backend := os.Getenv("TALLY_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}
	if addr := os.Getenv("TALLY_SURREALDB_ADDRESS"); addr != "" {
		config.Storage.SurrealDB.Address = addr
	}
	if user := os.Getenv("TALLY_SURREALDB_USERNAME"); user != "" {
		config.Storage.SurrealDB.Username = user
	}
	if pass := os.Getenv("TALLY_SURREALDB_PASSWORD"); pass != "" {
		config.Storage.SurrealDB.Password = pass
	}
	if ns := os.Getenv("TALLY_SURREALDB_NAMESPACE"); ns != "" {
		config.Storage.SurrealDB.Namespace = ns
	}
	if db := os.Getenv("TALLY_SURREALDB_DATABASE"); db != "" {
		config.Storage.SurrealDB.Database = db
	}

	// Auth overrides
	if v := os.Getenv("TALLY_AUTH_SESSION_SECRET"); v != "" {
		config.Auth.SessionSecret = v
	}
	if v := os.Getenv("TALLY_AUTH_SESSION_EXPIRY"); v != "" {
		config.Auth.SessionExpiry = v
	}
	if v := os.Getenv("TALLY_APP_URL"); v != "" {
		config.Auth.AppURL = v
	}
	if v := os.Getenv("TALLY_AUTH_GOOGLE_CLIENT_ID"); v != "" {
		config.Auth.Google.ClientID = v
	}
	if v := os.Getenv("TALLY_AUTH_GOOGLE_CLIENT_SECRET"); v != "" {
		config.Auth.Google.ClientSecret = v
	}
}

// ValidateRequired returns the required production settings that are
// missing or still at insecure defaults. Empty slice means ready.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if c.Auth.SessionSecret == "" || strings.Contains(c.Auth.SessionSecret, "change-in-production") {
		missing = append(missing, "auth.session_secret")
	}
	if c.Auth.Google.ClientID == "" {
		missing = append(missing, "auth.google.client_id")
	}
	if c.Auth.Google.ClientSecret == "" {
		missing = append(missing, "auth.google.client_secret")
	}
	if c.Auth.AppURL == "" {
		missing = append(missing, "auth.app_url")
	}
	return missing
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
