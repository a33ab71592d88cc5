// Package main provides the start_solve CLI, which scaffolds the next daily
// puzzle entry in a Cargo workspace.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/aoc-start/internal/observability"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "start_solve",
	Short: "Scaffold today's puzzle entry",
	Long: `start_solve creates the crate for a daily puzzle: it registers dayNN in the
workspace Cargo.toml, runs "cargo new --bin dayNN", writes main.rs and lib.rs
stubs and downloads the puzzle input into dayNN/src/input.txt.

The session token is read from session.txt (override with AOC_SESSION_FILE).
If dayNN already exists nothing is changed.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = observability.NewLogger(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runStart,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config JSON file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to stderr")
	rootCmd.PersistentFlags().IntVar(&flagYear, "year", 0, "Puzzle year (default: current year)")
	rootCmd.PersistentFlags().IntVar(&flagDay, "day", 0, "Puzzle day (default: current day)")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", ".", "Workspace directory")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
