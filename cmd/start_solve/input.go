package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/aoc-start/internal/observability"
	"github.com/jonathan/aoc-start/internal/pipeline"
)

var inputCmd = &cobra.Command{
	Use:   "input",
	Short: "Download the puzzle input again for an existing entry",
	Long:  "Re-downloads dayNN/src/input.txt, for example when the first run stopped because the puzzle had not unlocked yet.",
	Args:  cobra.NoArgs,
	RunE:  runInput,
}

func init() {
	rootCmd.AddCommand(inputCmd)
}

func runInput(cmd *cobra.Command, _ []string) error {
	opts, err := buildOptions(cmd)
	if err != nil {
		return err
	}

	res, err := pipeline.RefreshInput(context.Background(), opts)
	if err != nil {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintFailure(res, err)
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Input: %s\n", res.InputPath)
	return nil
}
