// Package observability provides operator-facing output and logging for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/aoc-start/internal/pipeline"
	"github.com/jonathan/aoc-start/internal/pipeline/steps"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
)

// Printer handles formatted output for the operator
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs what a run did. A run that found the entry already
// present prints a single notice line instead of a box.
func (p *Printer) PrintResult(res *pipeline.Result) {
	if res == nil {
		return
	}

	if res.Outcome == pipeline.OutcomeAlreadyExists {
		_, _ = fmt.Fprintf(p.out, "%s already exists.\n", res.Entry)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Puzzle:   %d day %d\n", res.Date.Year, res.Date.Day))
	if res.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", res.Title))
	}
	sb.WriteString(fmt.Sprintf("Entry:    %s\n", res.EntryDir))
	if res.Sources != nil {
		sb.WriteString(fmt.Sprintf("Main:     %s\n", res.Sources.EntryPoint))
		sb.WriteString(fmt.Sprintf("Library:  %s\n", res.Sources.Library))
	}
	if res.InputPath != "" {
		sb.WriteString(fmt.Sprintf("Input:    %s\n", res.InputPath))
	}
	if res.ReadmePath != "" {
		sb.WriteString(fmt.Sprintf("README:   %s\n", res.ReadmePath))
	}
	sb.WriteString("\n")
	sb.WriteString(formatSteps(res.Steps))

	p.printBox(strings.ToUpper(res.Entry)+" READY", strings.TrimRight(sb.String(), "\n"))
}

// PrintFailure outputs the step trail of a run that stopped early, so the
// operator can see what was left on disk.
func (p *Printer) PrintFailure(res *pipeline.Result, err error) {
	if res == nil || err == nil {
		return
	}

	var sb strings.Builder
	if kind := steps.KindOf(err); kind != "" {
		sb.WriteString(fmt.Sprintf("Failure:  %s\n", kind))
	}
	if res.ManifestUpdated {
		sb.WriteString(fmt.Sprintf("Manifest: %s is still registered\n", res.Entry))
	}
	sb.WriteString("\n")
	sb.WriteString(formatSteps(res.Steps))

	title := "RUN ABORTED"
	if res.Entry != "" {
		title = strings.ToUpper(res.Entry) + " " + title
	}
	p.printBox(title, strings.TrimRight(sb.String(), "\n"))
}

func formatSteps(results []steps.StepResult) string {
	var sb strings.Builder
	for _, sr := range results {
		marker := "✓"
		switch sr.Status {
		case steps.StatusFailed:
			marker = "✗"
		case steps.StatusSkipped:
			marker = "-"
		}
		sb.WriteString(fmt.Sprintf("%s %-18s %s\n", marker, sr.Step, sr.Status))
	}
	return sb.String()
}
