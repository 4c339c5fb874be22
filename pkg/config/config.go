package config

import (
	"errors"
	"fmt"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"time"
)

const appName = "kbswitch"

type StoreKind string

const (
	StoreMemory StoreKind = "memory"
	StoreJSON   StoreKind = "json"
	StoreSQLite StoreKind = "sqlite"
)

var ErrUnknownStore = errors.New("unknown store")

type Config struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	Store        StoreKind     `yaml:"store"`
	// StorePath overrides the default location of json and sqlite stores.
	StorePath string `yaml:"store_path"`
	// LayoutsFile reads layouts from an INI file instead of the registry.
	LayoutsFile        string   `yaml:"layouts_file"`
	PreferencesCommand []string `yaml:"preferences_command"`
	Debug              bool     `yaml:"debug"`
}

func Default() *Config {
	return &Config{
		PollInterval:       time.Second,
		Store:              StoreMemory,
		PreferencesCommand: []string{"control.exe", "input.dll"},
	}
}

func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(appName, "config.yaml"))
	if err != nil {
		return "", fmt.Errorf("get config path: %w", err)
	}
	return path, nil
}

// Load reads the config at path on top of the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("%w %q", ErrUnknownStore, c.Store)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}

	return nil
}

// StoreFile is where the json or sqlite store lives.
func (c *Config) StoreFile() (string, error) {
	if c.StorePath != "" {
		return c.StorePath, nil
	}

	name := "windows.json"
	if c.Store == StoreSQLite {
		name = "windows.db"
	}

	path, err := xdg.StateFile(filepath.Join(appName, name))
	if err != nil {
		return "", fmt.Errorf("get store path: %w", err)
	}
	return path, nil
}
