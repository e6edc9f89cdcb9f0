package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/tiers/internal/form"
)

// FileName is the project configuration file.
const FileName = "tiers.yaml"

// Environment overrides, read after .env is loaded.
const (
	EnvLogLevel = "TIERS_LOG_LEVEL"
	EnvFormMode = "TIERS_FORM_MODE"
	EnvPort     = "TIERS_PORT"
)

// Config represents the top-level tiers.yaml configuration.
type Config struct {
	Chart  string       `yaml:"chart"` // relative to the project root
	Form   FormConfig   `yaml:"form"`
	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`
}

// FormConfig controls how record forms are wired.
type FormConfig struct {
	Mode form.Mode `yaml:"mode"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Load reads a tiers.yaml file from disk. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadProject loads <repoRoot>/.env if present, then tiers.yaml (or the
// defaults when there is none), then applies environment overrides.
func LoadProject(repoRoot string) (*Config, error) {
	envPath := filepath.Join(repoRoot, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envPath, err)
	}

	cfg, err := Load(filepath.Join(repoRoot, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvFormMode); v != "" {
		c.Form.Mode = form.Mode(v)
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks that every setting has a usable value.
func (c *Config) Validate() error {
	mode, err := form.ParseMode(string(c.Form.Mode))
	if err != nil {
		return fmt.Errorf("form.mode: %w", err)
	}
	c.Form.Mode = mode

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d out of range", c.Server.Port)
	}
	return nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Chart: filepath.ToSlash(filepath.Join("accounts", "chart-of-accounts.csv")),
		Form: FormConfig{
			Mode: form.ModeDerived,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}
