// Package config resolves the data directory and the session-shaping
// knobs from config file, environment, and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the tunable application settings.
type Config struct {
	DataDir string `mapstructure:"DATA_DIR"`
	// SessionItems is the target session length.
	SessionItems int `mapstructure:"SESSION_ITEMS"`
	// SessionSeconds is the session time budget.
	SessionSeconds int `mapstructure:"SESSION_SECONDS"`
	// RepeatCount is how often each new card repeats when introduced.
	RepeatCount int `mapstructure:"REPEAT_COUNT"`
	// RollbackKeep bounds the number of pre-import snapshots kept.
	RollbackKeep int `mapstructure:"ROLLBACK_KEEP"`
}

// Load reads configuration from jonmem.yaml (data dir, then current
// directory), JONMEM_* environment variables, and built-in defaults, in
// ascending priority.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("jonmem")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := DefaultDataDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetDefault("SESSION_ITEMS", 10)
	v.SetDefault("SESSION_SECONDS", 300)
	v.SetDefault("REPEAT_COUNT", 2)
	v.SetDefault("ROLLBACK_KEEP", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("JONMEM")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	if cfg.SessionItems < 1 {
		cfg.SessionItems = 10
	}
	if cfg.SessionSeconds < 1 {
		cfg.SessionSeconds = 300
	}
	if cfg.RepeatCount < 1 {
		cfg.RepeatCount = 2
	}
	return &cfg, nil
}

// DefaultDataDir resolves the data directory in priority order:
// 1. JONMEM_DATA_DIR environment variable
// 2. $XDG_DATA_HOME/jonmem
// 3. ~/.local/share/jonmem
func DefaultDataDir() (string, error) {
	if p := os.Getenv("JONMEM_DATA_DIR"); p != "" {
		return p, nil
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "jonmem"), nil
}

// EnsureDataDir creates the configured data directory if needed.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o755)
}
