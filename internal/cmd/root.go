package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	groupCore  = "core"
	groupSetup = "setup"
)

var (
	configPath string // --config, overrides the XDG config file
	tuiQuery   string // --query, committed when the UI starts
)

var rootCmd = &cobra.Command{
	Use:   "movie-explorer",
	Short: "search the OMDb movie catalog from your terminal",
	Long: `movie-explorer - search the OMDb movie catalog from your terminal
  - type a title and press enter to search
  - pick a result to see its details`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx. Cancelling ctx stops an
// in-flight one-shot search.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Core Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/movie-explorer/config.yaml)")
	rootCmd.Flags().StringVarP(&tuiQuery, "query", "q", "", "search for this title on start")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(searchCmd)
}
