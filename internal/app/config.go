package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Backend names accepted by Config.Backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Environment     string        // development or production
	Home            string        // state directory, e.g. $HOME/.peerid
	Backend         string        // file, sqlite or memory
	Passphrase      string        // optional; seals the file backend
	RegistryURL     string        // registry base URL; empty disables announcements
	AnnounceTimeout time.Duration // deadline of one announcement
	HTTP            *http.Client  // optional; defaults to a client with AnnounceTimeout
}

// LoadConfig reads PEERID_* environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment:     os.Getenv("PEERID_ENV"),
		Home:            os.Getenv("PEERID_HOME"),
		Backend:         os.Getenv("PEERID_BACKEND"),
		Passphrase:      os.Getenv("PEERID_PASSPHRASE"),
		RegistryURL:     os.Getenv("PEERID_REGISTRY_URL"),
		AnnounceTimeout: 10 * time.Second,
	}
	if v := os.Getenv("PEERID_ANNOUNCE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PEERID_ANNOUNCE_TIMEOUT: %w", err)
		}
		cfg.AnnounceTimeout = d
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize fills defaults and validates the settings. It is called again
// after command-line flags override environment values.
func (c *Config) Normalize() error {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment != "development" && c.Environment != "production" {
		return fmt.Errorf("unknown environment %q", c.Environment)
	}

	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.Home = filepath.Join(dir, ".peerid")
	}

	if c.Backend == "" {
		c.Backend = BackendFile
	}
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.Backend, BackendFile, BackendSQLite, BackendMemory)
	}
	if c.Passphrase != "" && c.Backend != BackendFile {
		return fmt.Errorf("passphrase is only supported by the %s backend", BackendFile)
	}

	if c.AnnounceTimeout <= 0 {
		return fmt.Errorf("announce timeout must be positive, got %s", c.AnnounceTimeout)
	}
	return nil
}

// IsDevelopment reports whether logs should be human readable.
func (c *Config) IsDevelopment() bool { return c.Environment == "development" }

// LegacyPath is where releases before per-room slots kept the identity.
func (c *Config) LegacyPath() string { return filepath.Join(c.Home, "identity.json") }
