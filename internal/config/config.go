// Package config provides configuration management for the pipeline stages.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigPath = "PIPELINE_CONFIG"
	EnvBaseURL    = "STEAM_API_BASE"
	EnvDataDir    = "PIPELINE_DATA_DIR"
	EnvLogLevel   = "LOG_LEVEL"
)

// DefaultPath is the config file used when PIPELINE_CONFIG is unset.
const DefaultPath = "configs/pipeline.yaml"

// Configuration validation errors.
var (
	ErrInvalidBaseURL   = errors.New("source.base_url must be an absolute http(s) URL")
	ErrInvalidTimeout   = errors.New("source.timeout_sec must be at least 1")
	ErrMissingUserAgent = errors.New("source.user_agent is required")
	ErrMissingDataDir   = errors.New("paths.data_dir is required")
	ErrInvalidLogLevel  = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete pipeline configuration.
type Config struct {
	Source     SourceConfig     `yaml:"source"`
	Paths      PathsConfig      `yaml:"paths"`
	Capture    CaptureConfig    `yaml:"capture"`
	Validation ValidationConfig `yaml:"validation"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// SourceConfig describes the storefront endpoint.
type SourceConfig struct {
	BaseURL    string `yaml:"base_url"`
	UserAgent  string `yaml:"user_agent"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// PathsConfig locates the layer directories.
type PathsConfig struct {
	DataDir string `yaml:"data_dir"`
}

// CaptureConfig controls the bronze file layout.
type CaptureConfig struct {
	// Envelope wraps the response with source, endpoint and captured_at.
	Envelope bool `yaml:"envelope"`
}

// ValidationConfig controls record cleaning.
type ValidationConfig struct {
	Strict bool `yaml:"strict"`
}

// OutputConfig controls optional gold outputs.
type OutputConfig struct {
	MarkdownSummary bool `yaml:"markdown_summary"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig defines where stage metrics are written. Empty disables them.
type MetricsConfig struct {
	TextfileDir string `yaml:"textfile_dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL:    "https://store.steampowered.com",
			UserAgent:  "steam-data-pipeline/1.0",
			TimeoutSec: 30,
		},
		Paths: PathsConfig{
			DataDir: "data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads .env, then the config file named by PIPELINE_CONFIG (or
// DefaultPath) through LoadConfig. A missing DefaultPath means defaults plus
// environment overrides; a missing PIPELINE_CONFIG file is an error.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath

		if _, err := os.Stat(path); err != nil {
			return finalize(Default())
		}
	}

	return LoadConfig(path)
}

// LoadConfig loads configuration from a YAML file, applies the environment
// overrides and validates the result.
func LoadConfig(filepath string) (*Config, error) {
	cfg, err := readFile(filepath)
	if err != nil {
		return nil, err
	}

	return finalize(cfg)
}

func finalize(cfg *Config) (*Config, error) {
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func readFile(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Source.BaseURL = v
	}

	if v := os.Getenv(EnvDataDir); v != "" {
		c.Paths.DataDir = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Source.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.Source.BaseURL)
	}

	if c.Source.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Source.UserAgent == "" {
		return ErrMissingUserAgent
	}

	if c.Paths.DataDir == "" {
		return ErrMissingDataDir
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// GetTimeout returns the request timeout.
func (s *SourceConfig) GetTimeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{BaseURL: %s, DataDir: %s, Strict: %t}",
		c.Source.BaseURL,
		c.Paths.DataDir,
		c.Validation.Strict,
	)
}
