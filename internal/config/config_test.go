package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MOVIE_EXPLORER_API_KEY",
		"MOVIE_EXPLORER_BASE_URL",
		"MOVIE_EXPLORER_LOG_LEVEL",
		"MOVIE_EXPLORER_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.BaseURL != "http://www.omdbapi.com/" {
		t.Errorf("Expected base_url=http://www.omdbapi.com/, got %s", cfg.API.BaseURL)
	}
	if cfg.API.APIKey != "827057cf" {
		t.Errorf("Expected api_key=827057cf, got %s", cfg.API.APIKey)
	}
	if cfg.Search.MaxAttempts != 1 {
		t.Errorf("Expected max_attempts=1, got %d", cfg.Search.MaxAttempts)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("Expected timeout=10s, got %s", cfg.Timeout())
	}
	if cfg.Backoff() != time.Second {
		t.Errorf("Expected backoff=1s, got %s", cfg.Backoff())
	}
	if !cfg.UI.AltScreen {
		t.Error("Expected alt_screen=true")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected log.level=info, got %s", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should validate: %v", err)
	}
}

func TestConfigGet(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key      string
		expected string
	}{
		{"api.base_url", "http://www.omdbapi.com/"},
		{"api.api_key", "827057cf"},
		{"api.timeout_ms", "10000"},
		{"search.max_attempts", "1"},
		{"search.backoff_ms", "1000"},
		{"ui.accent_color", "62"},
		{"ui.alt_screen", "true"},
		{"log.level", "info"},
		{"log.file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error: %v", tt.key, err)
			}
			if got != tt.expected {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestListKeys_AllGettable(t *testing.T) {
	cfg := DefaultConfig()
	for _, key := range ListKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("ListKeys contains %q but Get fails: %v", key, err)
		}
	}
}

func TestConfigSet(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"api.base_url", "https://example.test/omdb/"},
		{"api.api_key", "secret"},
		{"api.timeout_ms", "2500"},
		{"search.max_attempts", "3"},
		{"search.backoff_ms", "0"},
		{"ui.accent_color", "#ff8800"},
		{"ui.alt_screen", "false"},
		{"log.level", "debug"},
		{"log.file", "/tmp/movie.log"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) error: %v", tt.key, tt.value, err)
			}
			got, _ := cfg.Get(tt.key)
			if got != tt.value {
				t.Errorf("after Set, Get(%q) = %q, want %q", tt.key, got, tt.value)
			}
		})
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr string
	}{
		{"api", "x", "section.key"},
		{"api.base_url.extra", "x", "section.key"},
		{"nope.key", "x", "unknown section"},
		{"api.nope", "x", "unknown field: api.nope"},
		{"api.base_url", "ftp://example.test", "invalid base_url"},
		{"api.base_url", "not a url", "invalid base_url"},
		{"api.timeout_ms", "abc", "invalid value for timeout_ms"},
		{"api.timeout_ms", "0", "must be positive"},
		{"search.max_attempts", "0", "between 1 and 10"},
		{"search.max_attempts", "11", "between 1 and 10"},
		{"search.backoff_ms", "-1", "between 0 and"},
		{"ui.accent_color", "purple", "invalid accent_color"},
		{"ui.accent_color", "256", "invalid accent_color"},
		{"ui.alt_screen", "maybe", "invalid value for alt_screen"},
		{"log.level", "verbose", "invalid level"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.value)
			if err == nil {
				t.Fatalf("Set(%q, %q) expected error", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFromFile error: %v", err)
	}
	if cfg.API.APIKey != DefaultConfig().API.APIKey {
		t.Errorf("expected default api key, got %s", cfg.API.APIKey)
	}
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Search.MaxAttempts = 4
	cfg.UI.AccentColor = "#abc"
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile error: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile error: %v", err)
	}
	if loaded.Search.MaxAttempts != 4 {
		t.Errorf("max_attempts = %d, want 4", loaded.Search.MaxAttempts)
	}
	if loaded.UI.AccentColor != "#abc" {
		t.Errorf("accent_color = %s, want #abc", loaded.UI.AccentColor)
	}
}

func TestLoadFromFile_PartialKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("search:\n  max_attempts: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile error: %v", err)
	}
	if cfg.Search.MaxAttempts != 2 {
		t.Errorf("max_attempts = %d, want 2", cfg.Search.MaxAttempts)
	}
	if cfg.API.TimeoutMs != 10_000 {
		t.Errorf("timeout_ms = %d, want default 10000", cfg.API.TimeoutMs)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badYAML, []byte("api: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(badYAML); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("expected parse error, got %v", err)
	}

	badValue := filepath.Join(dir, "value.yaml")
	if err := os.WriteFile(badValue, []byte("search:\n  max_attempts: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(badValue); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MOVIE_EXPLORER_API_KEY", "env-key")
	t.Setenv("MOVIE_EXPLORER_BASE_URL", "https://mirror.test/")
	t.Setenv("MOVIE_EXPLORER_LOG_LEVEL", "warn")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	if cfg.API.APIKey != "env-key" {
		t.Errorf("api_key = %s, want env-key", cfg.API.APIKey)
	}
	if cfg.API.BaseURL != "https://mirror.test/" {
		t.Errorf("base_url = %s, want https://mirror.test/", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %s, want warn", cfg.Log.Level)
	}
}

func TestApplyEnvOverrides_IgnoresInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("MOVIE_EXPLORER_BASE_URL", "::bad::")
	t.Setenv("MOVIE_EXPLORER_LOG_LEVEL", "loud")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	if cfg.API.BaseURL != DefaultConfig().API.BaseURL {
		t.Errorf("invalid base url override should be ignored, got %s", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("invalid level override should be ignored, got %s", cfg.Log.Level)
	}
}

func TestApplyEnvOverrides_Debug(t *testing.T) {
	clearEnv(t)
	t.Setenv("MOVIE_EXPLORER_LOG_LEVEL", "error")
	t.Setenv("MOVIE_EXPLORER_DEBUG", "1")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	if cfg.Log.Level != "debug" {
		t.Errorf("MOVIE_EXPLORER_DEBUG should force debug, got %s", cfg.Log.Level)
	}
}
