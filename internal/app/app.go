// Package app wires configuration, storage, and clients into the
// shared core used by cmd/tally-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tallyhq/tally/internal/clients/google"
	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/interfaces"
	"github.com/tallyhq/tally/internal/storage"
)

// App holds initialized configuration, storage, and clients.
type App struct {
	Config       *common.Config
	Logger       *common.Logger
	Storage      interfaces.StorageManager
	GoogleClient interfaces.GoogleClient
	StartupTime  time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, and the Google
// client. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, TALLY_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("TALLY_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "tally.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/tally.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := common.NewLogger(config.Logging.Level, config.Logging.Format)

	if config.IsProduction() {
		if missing := config.ValidateRequired(); len(missing) > 0 {
			return nil, fmt.Errorf("missing required production config: %v", missing)
		}
	}

	// Initialize storage
	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize Google OAuth client
	var googleClient interfaces.GoogleClient
	if config.Auth.Google.ClientID != "" && config.Auth.Google.ClientSecret != "" {
		googleClient = google.NewClient(
			config.Auth.Google.ClientID,
			config.Auth.Google.ClientSecret,
			google.WithLogger(logger),
		)
	} else {
		logger.Warn().Msg("Google OAuth not configured - sign-in will be unavailable")
	}

	a := &App{
		Config:       config,
		Logger:       logger,
		Storage:      storageManager,
		GoogleClient: googleClient,
		StartupTime:  startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
