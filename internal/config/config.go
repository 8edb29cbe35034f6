// Package config loads the client configuration from
// ~/.campusctl/config.yaml, with environment overrides for the values that
// change between machines.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/campuskit/campusctl/internal/errors"
)

// EnvAPIURL overrides the configured API base URL
const EnvAPIURL = "CAMPUS_API_URL"

// DefaultAPIBaseURL is the local development endpoint
const DefaultAPIBaseURL = "http://localhost:9099"

// Config is the campusctl global configuration
type Config struct {
	// API groups remote endpoint settings
	API APIConfig `yaml:"api"`

	// Logging groups logger settings
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// DefaultTimeoutSeconds bounds every API request
const DefaultTimeoutSeconds = 30

// APIConfig holds remote endpoint settings
type APIConfig struct {
	// BaseURL is the campus API endpoint
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds each request
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format,omitempty"` // "text", "json"
}

// Default returns the default configuration
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:        DefaultAPIBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Dir returns the campusctl config directory, creating it if needed
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigLoad, "could not resolve home directory", err)
	}

	dir := filepath.Join(home, ".campusctl")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigLoad, "could not create config directory", err)
	}
	return dir, nil
}

// Path returns the path of the config file
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration, writing the defaults first if no file
// exists yet, then applies environment overrides.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	return applyEnv(cfg), nil
}

// LoadFile reads the configuration from an explicit path, creating it with
// defaults when missing
func LoadFile(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := Save(cfg, path); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigLoad, "could not read config file", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid, fmt.Sprintf("could not parse %s", path), err).
			WithSuggestion("Fix the YAML syntax or delete the file to regenerate defaults")
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultAPIBaseURL
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return cfg, nil
}

// Save writes the configuration to the given path
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "could not serialize config", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigLoad, "could not write config file", err)
	}
	return nil
}

// applyEnv layers environment overrides onto the file configuration
func applyEnv(cfg Config) Config {
	if url := os.Getenv(EnvAPIURL); url != "" {
		cfg.API.BaseURL = url
	}
	return cfg
}
