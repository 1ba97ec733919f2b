package common

import (
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8080)
	}
}

func TestConfig_DefaultStorageBackend(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Storage.Backend != "surrealdb" {
		t.Errorf("Storage.Backend default = %q, want %q", cfg.Storage.Backend, "surrealdb")
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("TALLY_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_StorageEnvOverrides(t *testing.T) {
	t.Setenv("TALLY_STORAGE_BACKEND", "memory")
	t.Setenv("TALLY_SURREALDB_ADDRESS", "ws://db.internal:8000/rpc")
	t.Setenv("TALLY_SURREALDB_NAMESPACE", "prod")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Storage.Backend != "memory" {
		t.Errorf("Storage.Backend = %q, want %q", cfg.Storage.Backend, "memory")
	}
	if cfg.Storage.SurrealDB.Address != "ws://db.internal:8000/rpc" {
		t.Errorf("SurrealDB.Address = %q, want override", cfg.Storage.SurrealDB.Address)
	}
	if cfg.Storage.SurrealDB.Namespace != "prod" {
		t.Errorf("SurrealDB.Namespace = %q, want %q", cfg.Storage.SurrealDB.Namespace, "prod")
	}
}

func TestConfig_AuthEnvOverrides(t *testing.T) {
	t.Setenv("TALLY_AUTH_SESSION_SECRET", "secret-from-env")
	t.Setenv("TALLY_AUTH_GOOGLE_CLIENT_ID", "goog-id-env")
	t.Setenv("TALLY_AUTH_GOOGLE_CLIENT_SECRET", "goog-secret-env")
	t.Setenv("TALLY_APP_URL", "https://tally.example.com")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Auth.SessionSecret != "secret-from-env" {
		t.Errorf("Auth.SessionSecret = %q, want %q", cfg.Auth.SessionSecret, "secret-from-env")
	}
	if cfg.Auth.Google.ClientID != "goog-id-env" {
		t.Errorf("Auth.Google.ClientID = %q, want %q", cfg.Auth.Google.ClientID, "goog-id-env")
	}
	if cfg.Auth.Google.ClientSecret != "goog-secret-env" {
		t.Errorf("Auth.Google.ClientSecret = %q, want %q", cfg.Auth.Google.ClientSecret, "goog-secret-env")
	}
	if cfg.Auth.AppURL != "https://tally.example.com" {
		t.Errorf("Auth.AppURL = %q, want %q", cfg.Auth.AppURL, "https://tally.example.com")
	}
}

func TestAuthConfig_GetSessionExpiry_Default(t *testing.T) {
	cfg := NewDefaultConfig()
	if d := cfg.Auth.GetSessionExpiry(); d != 7*24*time.Hour {
		t.Errorf("GetSessionExpiry() = %v, want 168h", d)
	}
}

func TestAuthConfig_GetSessionExpiry_InvalidFallsBack(t *testing.T) {
	cfg := &AuthConfig{SessionExpiry: "not-a-duration"}
	if d := cfg.GetSessionExpiry(); d != 7*24*time.Hour {
		t.Errorf("GetSessionExpiry() = %v, want 168h (fallback for invalid)", d)
	}
}

func TestAuthConfig_RedirectURI(t *testing.T) {
	cfg := &AuthConfig{AppURL: "https://tally.example.com/"}
	if got := cfg.RedirectURI(); got != "https://tally.example.com/auth/callback" {
		t.Errorf("RedirectURI() = %q", got)
	}
}

func TestConfig_ValidateRequired_AllMissing(t *testing.T) {
	cfg := &Config{
		Auth: AuthConfig{SessionSecret: "dev-session-secret-change-in-production"},
	}
	missing := cfg.ValidateRequired()
	if len(missing) != 4 {
		t.Errorf("expected 4 missing fields, got %d: %v", len(missing), missing)
	}
}

func TestConfig_ValidateRequired_AllPresent(t *testing.T) {
	cfg := &Config{
		Auth: AuthConfig{
			SessionSecret: "real-secret-value",
			AppURL:        "https://tally.example.com",
			Google:        OAuthProvider{ClientID: "goog-id", ClientSecret: "goog-secret"},
		},
	}
	missing := cfg.ValidateRequired()
	if len(missing) != 0 {
		t.Errorf("expected 0 missing fields, got %d: %v", len(missing), missing)
	}
}

func TestConfig_ValidateRequired_DefaultSecretRejected(t *testing.T) {
	cfg := &Config{
		Auth: AuthConfig{
			SessionSecret: "dev-session-secret-change-in-production",
			AppURL:        "https://tally.example.com",
			Google:        OAuthProvider{ClientID: "id", ClientSecret: "secret"},
		},
	}
	missing := cfg.ValidateRequired()
	if len(missing) != 1 {
		t.Errorf("expected 1 missing field (session_secret), got %d: %v", len(missing), missing)
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.IsProduction() {
		t.Error("development config reported as production")
	}
	cfg.Environment = "Production"
	if !cfg.IsProduction() {
		t.Error("production config not detected")
	}
	cfg.Environment = "prod"
	if !cfg.IsProduction() {
		t.Error("prod shorthand not detected")
	}
}
