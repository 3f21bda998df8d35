// ABOUTME: Habits configuration management with backend selection.
// ABOUTME: Handles settings, log preferences, and the key-value backend factory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/charm"
	"github.com/harperreed/habits/internal/kv"
	"github.com/harperreed/habits/internal/logging"
)

// Backend names accepted in the config file.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
)

// Config stores habits tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger" or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts habits.db here, badger uses a badger/ folder, logs go to logs/.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/habits.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel is debug, info, warn (default) or error.
	LogLevel string `json:"log_level,omitempty"`

	// CharmHost overrides the Charm server used by the charm backend.
	CharmHost string `json:"charm_host,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DefaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// LogDir returns where the rotating log file lives.
func (c *Config) LogDir() string {
	return filepath.Join(c.GetDataDir(), "logs")
}

// DefaultDataDir returns the default data directory under XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "habits")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// NewLogger builds the application logger from the config.
func (c *Config) NewLogger(debug bool) (*log.Logger, func() error, error) {
	logger, closer, err := logging.New(logging.Config{
		Dir:   c.LogDir(),
		Level: c.LogLevel,
		Debug: debug,
	})
	if err != nil {
		return nil, nil, err
	}
	return logger, closer.Close, nil
}

// OpenStorage creates a key-value store based on the configured backend.
func (c *Config) OpenStorage(logger *log.Logger) (kv.Store, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	var (
		store kv.Store
		err   error
	)
	switch backend {
	case BackendSQLite:
		store, err = kv.OpenSQLite(filepath.Join(dataDir, "habits.db"))
	case BackendBadger:
		store, err = kv.OpenBadger(filepath.Join(dataDir, "badger"), logger)
	case BackendCharm:
		store, err = charm.InitClient(charm.Options{Host: c.CharmHost, Logger: logger})
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
	// Constructors return typed nil pointers on failure.
	if err != nil {
		return nil, err
	}
	return store, nil
}

// settable maps config keys to their field setters.
var settable = map[string]func(c *Config, v string) error{
	"backend": func(c *Config, v string) error {
		switch v {
		case BackendSQLite, BackendBadger, BackendCharm:
			c.Backend = v
			return nil
		}
		return fmt.Errorf("unknown backend: %q (want sqlite, badger or charm)", v)
	},
	"data_dir": func(c *Config, v string) error {
		c.DataDir = v
		return nil
	},
	"log_level": func(c *Config, v string) error {
		if _, err := logging.ParseLevel(v); err != nil {
			return err
		}
		c.LogLevel = v
		return nil
	},
	"charm_host": func(c *Config, v string) error {
		c.CharmHost = v
		return nil
	},
}

// Keys returns the names accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(settable))
	for k := range settable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns a single config value by its JSON key.
func (c *Config) Set(key, value string) error {
	set, ok := settable[key]
	if !ok {
		return fmt.Errorf("unknown config key: %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return set(c, value)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "habits", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
