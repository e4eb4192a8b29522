package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "patchwork",
		Short: "CLI tool for the patchwork game API",
		Long: `patchwork is a CLI tool for playing patchwork matches through the JSON API.

It supports creating and playing matches, fetching histories and stats,
browsing archived replays, and replaying history files offline.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.Verbose)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PATCHWORK_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.MatchFile, "match-file", cfg.MatchFile, "File remembering the last match (env: PATCHWORK_MATCH_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.Catalog, "catalog", cfg.Catalog, "Catalog for offline replays when a history names none (env: PATCHWORK_CATALOG)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
