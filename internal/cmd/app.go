package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/runger/movie-explorer/internal/config"
	"github.com/runger/movie-explorer/internal/logging"
	"github.com/runger/movie-explorer/internal/omdb"
	"github.com/runger/movie-explorer/internal/search"
)

// resolveConfigPath returns --config when set, else the default XDG path.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPaths().ConfigFile()
}

// loadConfig loads the configuration and returns it with the path it came from.
func loadConfig() (*config.Config, string, error) {
	path := resolveConfigPath()
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, path, nil
}

// newClient builds the catalog client from cfg.
func newClient(cfg *config.Config, logger *slog.Logger) *omdb.Client {
	return omdb.NewClient(omdb.Options{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.APIKey,
		Timeout: cfg.Timeout(),
	}, logger)
}

// newController builds a search controller over p with the configured
// retry policy.
func newController(cfg *config.Config, p search.Provider, logger *slog.Logger) *search.Controller {
	return search.NewController(p,
		search.WithRetryPolicy(search.RetryPolicy{
			MaxAttempts: cfg.Search.MaxAttempts,
			Backoff:     cfg.Backoff(),
		}),
		search.WithLogger(logger),
	)
}

// cliLogger logs to stderr at warn, or debug when configured.
func cliLogger(cfg *config.Config) *slog.Logger {
	return logging.New(&logging.Config{
		Output: os.Stderr,
		Level:  slog.LevelWarn,
		Debug:  cfg.Log.Level == "debug",
	})
}

// openTUILog opens the log file for the interactive UI, which owns the
// terminal. On failure it warns on stderr and returns a discarding logger.
func openTUILog(cfg *config.Config) (*slog.Logger, func()) {
	path := cfg.Log.File
	if path == "" {
		path = config.DefaultPaths().LogFile()
	}

	logger, f, err := logging.OpenFile(path, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sWarning:%s logging disabled: %v\n", colorYellow, colorReset, err)
		return logging.Discard(), func() {}
	}
	return logger, func() { _ = f.Close() }
}
