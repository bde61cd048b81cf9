package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"reconnect/internal/storage"
)

// Config holds the settings read from config.yaml.
type Config struct {
	Store          StoreConfig   `yaml:"store"`
	Logging        LoggingConfig `yaml:"logging"`
	SeedSampleData bool          `yaml:"seed_sample_data"`
}

type StoreConfig struct {
	// Engine is "json" (default) or "sqlite".
	Engine string `yaml:"engine"`
	// Path is the state file; empty means the default location for Engine.
	Path string `yaml:"path,omitempty"`
}

// DataPath returns the configured state path, or ~/.reconnect/state.json
// (state.db for sqlite) when none is set.
func (s StoreConfig) DataPath() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	p, err := storage.DefaultDataPath()
	if err != nil {
		return "", err
	}
	if strings.EqualFold(s.Engine, storage.EngineSQLite) {
		p = strings.TrimSuffix(p, filepath.Ext(p)) + ".db"
	}
	return p, nil
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// File receives log output in addition to stderr when set.
	File string `yaml:"file,omitempty"`
}

var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Engine: storage.EngineJSON,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		SeedSampleData: true,
	}
}

// DefaultConfigPath returns ~/.config/reconnect/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".reconnect", "config.yaml")
	}
	return filepath.Join(dir, "reconnect", "config.yaml")
}

// Load reads configuration from a YAML file. A missing file yields defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("RECONNECT_STORE"); v != "" {
		c.Store.Engine = v
	}
	if v := os.Getenv("RECONNECT_DATA"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("RECONNECT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Store.Engine) {
	case "", storage.EngineJSON, storage.EngineSQLite:
	default:
		return fmt.Errorf("invalid store engine: %s (valid: %s, %s)", c.Store.Engine, storage.EngineJSON, storage.EngineSQLite)
	}
	if !slices.Contains(ValidLogLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	return nil
}
