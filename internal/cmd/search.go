package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/movie-explorer/internal/logging"
	"github.com/runger/movie-explorer/internal/present"
	"github.com/runger/movie-explorer/internal/search"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:     "search <title...>",
	Short:   "Search the catalog once and print the results",
	GroupID: groupCore,
	Long: `Search the movie catalog for a title and print the matches.

All arguments are joined into one title. The command exits non-zero when
the search surfaced an error message, including "not found".

Examples:
  movie-explorer search batman begins     # Print matching titles
  movie-explorer search --json alien      # Output as JSON
  movie-explorer search --color never up  # Plain output`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&colorMode, "color", "auto", "color output: auto, always, or never")
}

// searchOutput is the --json document.
type searchOutput struct {
	Phrase  string        `json:"phrase"`
	Results []search.Item `json:"results"`
	Error   *string       `json:"error"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	applyColorMode()

	query, err := sanitizeQuery(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("invalid title: %w", err)
	}
	phrase := search.Normalize(query)
	if phrase == "" {
		return errors.New("title must not be empty")
	}

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	logger := cliLogger(cfg)
	logging.LogStartup(logger, logging.StartupInfo{
		Version:    Version,
		GitCommit:  GitCommit,
		ConfigPath: path,
		BaseURL:    cfg.API.BaseURL,
		Mode:       "cli",
		PID:        os.Getpid(),
	})

	ctrl := newController(cfg, newClient(cfg, logger), logger)
	state, err := observeOnce(cmdContext(cmd), ctrl, phrase)
	if err != nil {
		return err
	}

	if searchJSON {
		if err := writeSearchJSON(os.Stdout, state); err != nil {
			return err
		}
	} else {
		writeSearchRows(os.Stdout, state, terminalWidth())
	}

	if state.HasError() {
		return errors.New(state.ErrorMessage)
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// observeOnce commits phrase and waits for the attempt to settle. Cancelling
// ctx closes the controller and returns ctx's error.
func observeOnce(ctx context.Context, ctrl *search.Controller, phrase string) (search.State, error) {
	defer ctrl.Close()

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			ctrl.Close()
		case <-done:
		}
	}()

	ctrl.Observe(phrase)
	ctrl.Wait()
	close(done)

	if err := ctx.Err(); err != nil {
		return search.State{}, err
	}
	return ctrl.State(), nil
}

func writeSearchJSON(w io.Writer, state search.State) error {
	out := searchOutput{
		Phrase:  state.Phrase,
		Results: state.Results,
	}
	if out.Results == nil {
		out.Results = []search.Item{}
	}
	if state.HasError() {
		msg := state.ErrorMessage
		out.Error = &msg
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// writeSearchRows prints one line per result: title, year, category and id.
func writeSearchRows(w io.Writer, state search.State, width int) {
	if state.HasError() {
		return
	}

	rows := present.NewRows(state.Results)
	if len(rows) == 0 {
		fmt.Fprintf(w, "No matches for %q. Try another title.\n", present.Clean(state.Phrase))
		return
	}

	fmt.Fprintf(w, "%sResults for %q%s\n", colorBold, present.Clean(state.Phrase), colorReset)
	for _, row := range rows {
		// title + "  " + year + "  " + category + "  " + id
		meta := len(row.Secondary) + len(row.Category) + len(row.Key) + 6
		title := present.Truncate(row.Primary, width-meta-2)

		line := fmt.Sprintf("  %s  %s%s%s", title, colorDim, row.Secondary, colorReset)
		if row.Category != "" {
			line += fmt.Sprintf("  %s%s%s", colorCyan, row.Category, colorReset)
		}
		line += fmt.Sprintf("  %s%s%s", colorDim, row.Key, colorReset)
		fmt.Fprintln(w, line)
	}
}
