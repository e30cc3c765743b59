package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the movie-explorer configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Search SearchConfig `yaml:"search"`
	UI     UIConfig     `yaml:"ui"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig holds catalog API settings.
type APIConfig struct {
	BaseURL   string `yaml:"base_url"`   // OMDb endpoint
	APIKey    string `yaml:"api_key"`    // OMDb access key
	TimeoutMs int    `yaml:"timeout_ms"` // Per-request HTTP timeout
}

// SearchConfig holds search controller settings.
type SearchConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // Attempts per lookup (1 = no retry)
	BackoffMs   int `yaml:"backoff_ms"`   // Attempt n waits n*backoff_ms before retrying
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	AccentColor string `yaml:"accent_color"` // ANSI 0-255 or #rgb/#rrggbb
	AltScreen   bool   `yaml:"alt_screen"`   // Run in the alternate screen buffer
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (overrides default)
}

// Limits enforced by Validate.
const (
	maxAttemptsLimit = 10
	maxBackoffMs     = 60_000
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://www.omdbapi.com/",
			APIKey:    "827057cf",
			TimeoutMs: 10_000,
		},
		Search: SearchConfig{
			MaxAttempts: 1,
			BackoffMs:   1_000,
		},
		UI: UIConfig{
			AccentColor: "62",
			AltScreen:   true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Timeout returns the API timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutMs) * time.Millisecond
}

// Backoff returns the retry backoff as a duration.
func (c *Config) Backoff() time.Duration {
	return time.Duration(c.Search.BackoffMs) * time.Millisecond
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get retrieves a configuration value by dot-separated key,
// for example "api.timeout_ms" or "ui.accent_color".
func (c *Config) Get(key string) (string, error) {
	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	switch section {
	case "api":
		return c.getAPIField(field)
	case "search":
		return c.getSearchField(field)
	case "ui":
		return c.getUIField(field)
	case "log":
		return c.getLogField(field)
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case "api":
		return c.setAPIField(field, value)
	case "search":
		return c.setSearchField(field, value)
	case "ui":
		return c.setUIField(field, value)
	case "log":
		return c.setLogField(field, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func splitKey(key string) (section, field string, err error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", "", errors.New("key must be in format 'section.key'")
	}
	return parts[0], parts[1], nil
}

func (c *Config) getAPIField(field string) (string, error) {
	switch field {
	case "base_url":
		return c.API.BaseURL, nil
	case "api_key":
		return c.API.APIKey, nil
	case "timeout_ms":
		return strconv.Itoa(c.API.TimeoutMs), nil
	default:
		return "", fmt.Errorf("unknown field: api.%s", field)
	}
}

func (c *Config) setAPIField(field, value string) error {
	switch field {
	case "base_url":
		if err := validateBaseURL(value); err != nil {
			return err
		}
		c.API.BaseURL = value
	case "api_key":
		c.API.APIKey = value
	case "timeout_ms":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for timeout_ms: %w", err)
		}
		if v <= 0 {
			return fmt.Errorf("invalid timeout_ms: must be positive")
		}
		c.API.TimeoutMs = v
	default:
		return fmt.Errorf("unknown field: api.%s", field)
	}
	return nil
}

func (c *Config) getSearchField(field string) (string, error) {
	switch field {
	case "max_attempts":
		return strconv.Itoa(c.Search.MaxAttempts), nil
	case "backoff_ms":
		return strconv.Itoa(c.Search.BackoffMs), nil
	default:
		return "", fmt.Errorf("unknown field: search.%s", field)
	}
}

func (c *Config) setSearchField(field, value string) error {
	switch field {
	case "max_attempts":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_attempts: %w", err)
		}
		if v < 1 || v > maxAttemptsLimit {
			return fmt.Errorf("invalid max_attempts: must be between 1 and %d", maxAttemptsLimit)
		}
		c.Search.MaxAttempts = v
	case "backoff_ms":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for backoff_ms: %w", err)
		}
		if v < 0 || v > maxBackoffMs {
			return fmt.Errorf("invalid backoff_ms: must be between 0 and %d", maxBackoffMs)
		}
		c.Search.BackoffMs = v
	default:
		return fmt.Errorf("unknown field: search.%s", field)
	}
	return nil
}

func (c *Config) getUIField(field string) (string, error) {
	switch field {
	case "accent_color":
		return c.UI.AccentColor, nil
	case "alt_screen":
		return strconv.FormatBool(c.UI.AltScreen), nil
	default:
		return "", fmt.Errorf("unknown field: ui.%s", field)
	}
}

func (c *Config) setUIField(field, value string) error {
	switch field {
	case "accent_color":
		if !isValidColor(value) {
			return fmt.Errorf("invalid accent_color: %s (must be 0-255, #rgb or #rrggbb)", value)
		}
		c.UI.AccentColor = value
	case "alt_screen":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for alt_screen: %w", err)
		}
		c.UI.AltScreen = v
	default:
		return fmt.Errorf("unknown field: ui.%s", field)
	}
	return nil
}

func (c *Config) getLogField(field string) (string, error) {
	switch field {
	case "level":
		return c.Log.Level, nil
	case "file":
		return c.Log.File, nil
	default:
		return "", fmt.Errorf("unknown field: log.%s", field)
	}
}

func (c *Config) setLogField(field, value string) error {
	switch field {
	case "level":
		if !isValidLogLevel(value) {
			return fmt.Errorf("invalid level: %s (must be debug, info, warn, or error)", value)
		}
		c.Log.Level = value
	case "file":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown field: log.%s", field)
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validateBaseURL(c.API.BaseURL); err != nil {
		return err
	}
	if c.API.TimeoutMs <= 0 {
		return fmt.Errorf("invalid api.timeout_ms: %d (must be positive)", c.API.TimeoutMs)
	}
	if c.Search.MaxAttempts < 1 || c.Search.MaxAttempts > maxAttemptsLimit {
		return fmt.Errorf("invalid search.max_attempts: %d (must be between 1 and %d)", c.Search.MaxAttempts, maxAttemptsLimit)
	}
	if c.Search.BackoffMs < 0 || c.Search.BackoffMs > maxBackoffMs {
		return fmt.Errorf("invalid search.backoff_ms: %d (must be between 0 and %d)", c.Search.BackoffMs, maxBackoffMs)
	}
	if !isValidColor(c.UI.AccentColor) {
		return fmt.Errorf("invalid ui.accent_color: %s", c.UI.AccentColor)
	}
	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("invalid log.level: %s", c.Log.Level)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url: %s (must be an http or https URL)", raw)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

var hexColorRE = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func isValidColor(color string) bool {
	if hexColorRE.MatchString(color) {
		return true
	}
	n, err := strconv.Atoi(color)
	return err == nil && n >= 0 && n <= 255
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("MOVIE_EXPLORER_API_KEY"); v != "" {
		c.API.APIKey = v
	}
	if v := os.Getenv("MOVIE_EXPLORER_BASE_URL"); v != "" {
		if validateBaseURL(v) == nil {
			c.API.BaseURL = v
		}
	}
	if v := os.Getenv("MOVIE_EXPLORER_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Log.Level = v
		}
	}
	if v := os.Getenv("MOVIE_EXPLORER_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
}

// ListKeys returns all user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"api.base_url",
		"api.api_key",
		"api.timeout_ms",
		"search.max_attempts",
		"search.backoff_ms",
		"ui.accent_color",
		"ui.alt_screen",
		"log.level",
		"log.file",
	}
}
