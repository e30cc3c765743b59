package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_DefaultConfig(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, New(nil))
}

func TestNew_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&Config{Output: &buf, Level: slog.LevelInfo})

	logger.Info("search settled", "phrase", "batman")

	entry := decodeLine(t, &buf)
	assert.Contains(t, entry, "ts")
	assert.NotContains(t, entry, "time")
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "search settled", entry["msg"])
	assert.Equal(t, "batman", entry["phrase"])

	ts, ok := entry["ts"].(string)
	require.True(t, ok)
	assert.True(t, strings.Contains(ts, "T"), "timestamp should be in ISO format")
}

func TestNew_DebugOverridesLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&Config{Output: &buf, Level: slog.LevelError, Debug: true})

	logger.Debug("debug message")

	assert.Contains(t, buf.String(), "debug message")
}

func TestNew_InfoLevel_HidesDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&Config{Output: &buf, Level: slog.LevelInfo})

	logger.Debug("debug message")

	assert.Empty(t, buf.String())
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := Discard()
	logger.Error("nothing")
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.name), tt.name)
	}
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "movie-explorer.log")
	logger, f, err := OpenFile(path, slog.LevelInfo)
	require.NoError(t, err)

	logger.Info("first")
	logger.Debug("hidden")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"first"`)
	assert.NotContains(t, string(data), "hidden")

	// Reopening appends rather than truncating.
	logger, f, err = OpenFile(path, slog.LevelInfo)
	require.NoError(t, err)
	logger.Info("second")
	require.NoError(t, f.Close())

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestLogStartup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&Config{Output: &buf, Level: slog.LevelInfo})

	LogStartup(logger, StartupInfo{
		Version:    "1.2.0",
		GitCommit:  "abc123",
		ConfigPath: "/home/u/.config/movie-explorer/config.yaml",
		BaseURL:    "http://www.omdbapi.com/",
		Mode:       "tui",
		PID:        12345,
	})

	entry := decodeLine(t, &buf)
	assert.Equal(t, "movie-explorer started", entry["msg"])
	assert.Equal(t, "1.2.0", entry["version"])
	assert.Equal(t, "abc123", entry["git_commit"])
	assert.Equal(t, "/home/u/.config/movie-explorer/config.yaml", entry["config_path"])
	assert.Equal(t, "http://www.omdbapi.com/", entry["base_url"])
	assert.Equal(t, "tui", entry["mode"])
	assert.Equal(t, float64(12345), entry["pid"])
}

func TestLogShutdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&Config{Output: &buf, Level: slog.LevelInfo})

	LogShutdown(logger, "user quit")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "movie-explorer shutting down", entry["msg"])
	assert.Equal(t, "user quit", entry["reason"])
}
