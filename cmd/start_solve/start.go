package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/aoc-start/internal/config"
	"github.com/jonathan/aoc-start/internal/fetch"
	"github.com/jonathan/aoc-start/internal/observability"
	"github.com/jonathan/aoc-start/internal/pipeline"
	"github.com/jonathan/aoc-start/internal/puzzle"
	"github.com/jonathan/aoc-start/internal/scaffold"
)

var (
	flagYear     int
	flagDay      int
	flagDir      string
	flagDescribe bool
)

// Swapped out in tests.
var (
	now                           = time.Now
	commandRunner scaffold.Runner = scaffold.NewRealRunner()
)

func init() {
	rootCmd.Flags().BoolVar(&flagDescribe, "describe", false, "Also save the puzzle description as dayNN/README.md")
}

func runStart(cmd *cobra.Command, _ []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}
	opts.Describe = flagDescribe

	res, err := pipeline.Run(context.Background(), opts)
	if err != nil {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintFailure(res, err)
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintResult(res)
	return nil
}

// buildOptions merges the config file, environment and flags into
// pipeline options.
func buildOptions(cmd *cobra.Command) (pipeline.RunOptions, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return pipeline.RunOptions{}, fmt.Errorf("failed to load config: %w", err)
	}

	return pipeline.RunOptions{
		Date:         selectedDate(now()),
		Now:          now,
		Root:         flagDir,
		ManifestPath: cfg.Manifest,
		SessionPath:  cfg.SessionFile,
		InputFile:    cfg.InputFile,
		BaseURL:      cfg.BaseURL,
		Scaffolder:   scaffold.NewInvoker(commandRunner, cfg.ScaffoldTool),
		Fetch: &fetch.Options{
			Timeout:   cfg.Timeout(),
			UserAgent: cfg.UserAgent,
		},
		Logger: logger,
	}, nil
}

// selectedDate returns the date given by --year/--day, filling whichever
// is missing from t. With neither flag it returns the zero Date so the
// pipeline resolves the date itself.
func selectedDate(t time.Time) puzzle.Date {
	if flagYear == 0 && flagDay == 0 {
		return puzzle.Date{}
	}
	d := puzzle.FromTime(t)
	if flagYear != 0 {
		d.Year = flagYear
	}
	if flagDay != 0 {
		d.Day = flagDay
	}
	return d
}
