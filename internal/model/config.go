package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// StorageConfig holds durable storage settings.
type StorageConfig struct {
	// Path is the SQLite database file. ":memory:" is accepted for
	// throwaway state.
	Path string `mapstructure:"path" yaml:"path"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	// DemoPassword is the single accepted password for every roster
	// account. There is no real credential check in this system.
	DemoPassword string `mapstructure:"demo_password" yaml:"demo_password"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`

	// LatencyMs is the simulated per-operation latency applied to
	// login, register, and task mutations. Zero disables the delay
	// without changing any observable behavior.
	LatencyMs int `mapstructure:"latency_ms" yaml:"latency_ms"`
}

// Latency returns the configured simulated latency as a duration.
func (c *AppConfig) Latency() time.Duration {
	return time.Duration(c.LatencyMs) * time.Millisecond
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/taskboard/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskboard", "config.yaml")
}

// DefaultDataPath returns the default SQLite database path,
// located next to the configuration file.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "taskboard.db")
	}
	return filepath.Join(home, ".config", "taskboard", "taskboard.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{Path: DefaultDataPath()},
		Auth:    AuthConfig{DemoPassword: "password"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.path", DefaultDataPath())
	v.SetDefault("auth.demo_password", "password")
	v.SetDefault("latency_ms", 0)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("auth", cfg.Auth)
	v.Set("latency_ms", cfg.LatencyMs)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
