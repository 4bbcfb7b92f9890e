// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRemote = "remote"
)

// Config holds the application configuration.
type Config struct {
	Board   BoardConfig   `toml:"board"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// BoardConfig holds drag-and-drop settings.
type BoardConfig struct {
	DragThreshold int `toml:"drag_threshold"` // cells the pointer travels before a press becomes a drag
}

// StorageConfig holds store settings.
type StorageConfig struct {
	Backend   string `toml:"backend"`    // "sqlite" or "remote"
	DBPath    string `toml:"db_path"`    // used by the sqlite backend
	RemoteURL string `toml:"remote_url"` // used by the remote backend, e.g. "http://localhost:8080"
	Timeout   string `toml:"timeout"`    // per-request timeout for the remote backend, e.g. "10s"
}

// ServerConfig holds `weekboard serve` settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// LogConfig holds diagnostic log settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // empty disables file logging
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			DragThreshold: 2,
		},
		Storage: StorageConfig{
			Backend:   BackendSQLite,
			DBPath:    defaultDBPath(),
			RemoteURL: "http://localhost:8080",
			Timeout:   "10s",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		UI: UIConfig{
			Theme: "frappe",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "weekboard.db"
	}
	return filepath.Join(home, ".local", "share", "weekboard", "weekboard.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "weekboard", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("WEEKBOARD_DRAG_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WEEKBOARD_DRAG_THRESHOLD must be an integer, got %q", v)
		}
		cfg.Board.DragThreshold = n
	}

	// Storage overrides
	if v := os.Getenv("WEEKBOARD_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("WEEKBOARD_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("WEEKBOARD_REMOTE_URL"); v != "" {
		cfg.Storage.RemoteURL = v
	}
	if v := os.Getenv("WEEKBOARD_TIMEOUT"); v != "" {
		cfg.Storage.Timeout = v
	}

	if v := os.Getenv("WEEKBOARD_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("WEEKBOARD_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	// Log overrides
	if v := os.Getenv("WEEKBOARD_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WEEKBOARD_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Board.DragThreshold < 0 {
		return errors.New("drag_threshold cannot be negative")
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set")
		}
	case BackendRemote:
		u, err := url.Parse(c.Storage.RemoteURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("remote_url must be an absolute URL, got %q", c.Storage.RemoteURL)
		}
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendSQLite, BackendRemote, c.Storage.Backend)
	}

	if d, err := time.ParseDuration(c.Storage.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("timeout must be a positive duration, got %q", c.Storage.Timeout)
	}

	if c.Server.Addr == "" {
		return errors.New("server addr must be set")
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// Timeout returns the remote request timeout. Call after Validate.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Storage.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
