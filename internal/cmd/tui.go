package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/runger/movie-explorer/internal/logging"
	"github.com/runger/movie-explorer/internal/search"
	"github.com/runger/movie-explorer/internal/ui"
)

// runTUI runs the interactive search UI on the controlling terminal.
func runTUI(cmd *cobra.Command, args []string) error {
	query, err := sanitizeQuery(tuiQuery)
	if err != nil {
		return fmt.Errorf("--query: %w", err)
	}

	if err := checkTerminal(); err != nil {
		return err
	}

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog := openTUILog(cfg)
	defer closeLog()
	logging.LogStartup(logger, logging.StartupInfo{
		Version:    Version,
		GitCommit:  GitCommit,
		ConfigPath: path,
		BaseURL:    cfg.API.BaseURL,
		Mode:       "tui",
		PID:        os.Getpid(),
	})

	client := newClient(cfg, logger)
	ctrl := newController(cfg, client, logger)
	defer ctrl.Close()

	tty, err := openTTY()
	if err != nil {
		return err
	}
	defer tty.Close()

	// Detect the color profile from the tty itself; stdout may be redirected.
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	theme := ui.NewTheme(cfg.UI.AccentColor)
	model := ui.NewModel(ctrl, client, ui.Options{
		Theme:        &theme,
		InitialQuery: search.Normalize(query),
		Logger:       logger,
	})

	opts := []tea.ProgramOption{
		tea.WithInput(tty),
		tea.WithOutput(tty),
		tea.WithContext(cmdContext(cmd)),
	}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		logger.Error("ui stopped", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logging.LogShutdown(logger, "user quit")
	return nil
}
