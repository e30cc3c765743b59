package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// withConfigFile points --config at a temp file holding contents (skipped
// when empty) and clears environment overrides.
func withConfigFile(t *testing.T, contents string) string {
	t.Helper()
	for _, key := range []string{
		"MOVIE_EXPLORER_API_KEY",
		"MOVIE_EXPLORER_BASE_URL",
		"MOVIE_EXPLORER_LOG_LEVEL",
		"MOVIE_EXPLORER_DEBUG",
	} {
		t.Setenv(key, "")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}

	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })
	return path
}

func withSearchGlobals(t *testing.T, json bool) {
	t.Helper()
	saveColors(t)
	oldJSON := searchJSON
	searchJSON = json
	colorMode = "never"
	t.Setenv("COLUMNS", "200")
	t.Cleanup(func() { searchJSON = oldJSON })
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() failed: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()
	_ = w.Close()
	os.Stdout = old
	out := <-outC
	_ = r.Close()
	return out
}
