// Package config resolves streakly's settings from built-in defaults, an
// optional YAML file, an optional .env file and the process environment.
// Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/config"

	"github.com/julianstephens/streakly/internal/constants"
)

type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

type StorageConfig struct {
	// Target is a file path, a PostgreSQL connection string or ":memory:"
	Target string `yaml:"target"`
	// Connection is a full PostgreSQL connection string, secrets included.
	// It is only ever read from the environment.
	Connection string `yaml:"-"`
}

type LoggingConfig struct {
	Debug bool   `yaml:"debug"`
	Dir   string `yaml:"dir"`
}

// envOverrides mirrors the settings that may come from the environment
type envOverrides struct {
	ConfigFile string `env:"STREAKLY_CONFIG_FILE"`
	Target     string `env:"STREAKLY_CONFIG"`
	Debug      *bool  `env:"STREAKLY_DEBUG"`
	LogDir     string `env:"STREAKLY_LOG_DIR"`
	Connection string `env:"STREAKLY_DB_CONNECTION"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Storage: StorageConfig{Target: constants.DefaultConfigPath},
		Logging: LoggingConfig{Dir: filepath.Join(constants.DefaultConfigDir, "logs")},
	}
}

// Options controls where Load looks for its sources
type Options struct {
	// File is the YAML config file. Empty means STREAKLY_CONFIG_FILE or the default location.
	File string
	// DotEnv is the .env file to load. Empty means ".env" in the working directory.
	DotEnv string
}

// Load builds the configuration. Missing files are skipped; a file that
// exists but cannot be parsed is an error.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	dotEnv := opts.DotEnv
	if dotEnv == "" {
		dotEnv = ".env"
	}
	// .env goes first so the YAML file can reference its variables.
	// godotenv never overrides variables already set in the process.
	if fileExists(dotEnv) {
		if err := godotenv.Load(dotEnv); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", dotEnv, err)
		}
	}

	var overrides envOverrides
	if err := ParseEnv(&overrides); err != nil {
		return nil, err
	}

	file := opts.File
	if file == "" {
		file = overrides.ConfigFile
	}
	if file == "" {
		file = constants.DefaultConfigFile
	}
	file, err := ExpandPath(file)
	if err != nil {
		return nil, err
	}

	if fileExists(file) {
		provider, err := config.NewYAML(
			config.File(file),
			config.Expand(os.LookupEnv),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create config provider: %w", err)
		}
		if err := provider.Get(config.Root).Populate(&cfg); err != nil {
			return nil, fmt.Errorf("failed to populate config: %w", err)
		}
	}

	cfg.applyEnv(overrides)

	if cfg.Logging.Dir, err = ExpandPath(cfg.Logging.Dir); err != nil {
		return nil, err
	}
	if !IsSpecialTarget(cfg.Storage.Target) {
		if cfg.Storage.Target, err = ExpandPath(cfg.Storage.Target); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

func (c *Config) applyEnv(o envOverrides) {
	if o.Target != "" {
		c.Storage.Target = o.Target
	}
	if o.Debug != nil {
		c.Logging.Debug = *o.Debug
	}
	if o.LogDir != "" {
		c.Logging.Dir = o.LogDir
	}
	if o.Connection != "" {
		c.Storage.Connection = o.Connection
	}
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// IsSpecialTarget reports whether target is not a filesystem path
func IsSpecialTarget(target string) bool {
	return target == constants.MemoryTarget ||
		strings.HasPrefix(target, "postgres://") ||
		strings.HasPrefix(target, "postgresql://")
}

// ExpandPath replaces a leading "~" with the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
