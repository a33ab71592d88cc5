// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults used when neither the config file nor the environment sets a value.
const (
	DefaultManifest     = "Cargo.toml"
	DefaultSessionFile  = "session.txt"
	DefaultBaseURL      = "https://adventofcode.com"
	DefaultScaffoldTool = "cargo"
	DefaultInputFile    = "input.txt"
	DefaultUserAgent    = "start_solve/1.0 (+https://github.com/jonathan/aoc-start)"
	DefaultTimeout      = 30
)

// Environment variables that override file values.
const (
	EnvSessionFile = "AOC_SESSION_FILE"
	EnvBaseURL     = "AOC_BASE_URL"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults.
type Config struct {
	Manifest       string `json:"manifest,omitempty" validate:"required"`                 // Workspace manifest path
	SessionFile    string `json:"session_file,omitempty" validate:"required"`             // Session token file
	BaseURL        string `json:"base_url,omitempty" validate:"required,url"`             // Puzzle service root
	ScaffoldTool   string `json:"scaffold_tool,omitempty" validate:"required"`            // Project generator binary
	InputFile      string `json:"input_file,omitempty" validate:"required,excludesall=/"` // Input file name inside src/
	UserAgent      string `json:"user_agent,omitempty" validate:"required"`               // User-Agent for HTTP requests
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"gte=0"`             // HTTP timeout
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Manifest:       DefaultManifest,
		SessionFile:    DefaultSessionFile,
		BaseURL:        DefaultBaseURL,
		ScaffoldTool:   DefaultScaffoldTool,
		InputFile:      DefaultInputFile,
		UserAgent:      DefaultUserAgent,
		TimeoutSeconds: DefaultTimeout,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvSessionFile); v != "" {
		c.SessionFile = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Manifest == "" {
		result.Manifest = defaults.Manifest
	}
	if result.SessionFile == "" {
		result.SessionFile = defaults.SessionFile
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.ScaffoldTool == "" {
		result.ScaffoldTool = defaults.ScaffoldTool
	}
	if result.InputFile == "" {
		result.InputFile = defaults.InputFile
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	return result
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Resolve loads the optional config file, fills defaults and applies
// environment overrides. An empty path skips the file.
func Resolve(path string) (Config, error) {
	var cfg Config
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(Default())
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
