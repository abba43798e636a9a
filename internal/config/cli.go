package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	StorageSQLite  = "sqlite"
	StorageKeyring = "keyring"
)

// CLI is ~/.config/niyam/config.yaml. Empty fields keep their defaults.
type CLI struct {
	BackendURL string `yaml:"backend_url"`
	Timeout    string `yaml:"timeout"`
	Storage    string `yaml:"storage"`
	DBPath     string `yaml:"db_path"`
	LogFile    string `yaml:"log_file"`
	LogLevel   string `yaml:"log_level"`
}

// DefaultDir is where the terminal client keeps its config, database and
// logs.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "niyam"), nil
}

func DefaultCLI(dir string) CLI {
	return CLI{
		BackendURL: "http://localhost:5000",
		Timeout:    "10s",
		Storage:    StorageSQLite,
		DBPath:     filepath.Join(dir, "niyam.db"),
		LogFile:    filepath.Join(dir, "logs", "niyam.log"),
		LogLevel:   "warn",
	}
}

// LoadCLI reads path over the defaults rooted at dir. A missing file is not
// an error.
func LoadCLI(path, dir string) (*CLI, error) {
	cfg := DefaultCLI(dir)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file CLI
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.merge(file)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *CLI) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageKeyring, StorageMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, c.Storage)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("config: invalid timeout %q: %w", c.Timeout, err)
	}
	return nil
}

func (c *CLI) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Save writes the config back, creating the directory if needed.
func (c *CLI) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func (c *CLI) merge(o CLI) {
	if o.BackendURL != "" {
		c.BackendURL = o.BackendURL
	}
	if o.Timeout != "" {
		c.Timeout = o.Timeout
	}
	if o.Storage != "" {
		c.Storage = o.Storage
	}
	if o.DBPath != "" {
		c.DBPath = o.DBPath
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}
