package scaffold

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultTool is the project generator invoked for new entries.
const DefaultTool = "cargo"

// ToolError represents a failed invocation of the scaffolding tool.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *ToolError) Error() string {
	cmdline := strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %v", cmdline, e.Cause)
	}
	msg := fmt.Sprintf("%s exited with status %d", cmdline, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}

// Invoker creates new binary crates.
type Invoker struct {
	Runner Runner
	Tool   string
}

// NewInvoker returns an Invoker using runner. An empty tool selects DefaultTool.
func NewInvoker(runner Runner, tool string) *Invoker {
	if tool == "" {
		tool = DefaultTool
	}
	return &Invoker{Runner: runner, Tool: tool}
}

// NewBinary runs "<tool> new --bin <entry>" inside root and returns the
// path of the crate's src directory.
func (i *Invoker) NewBinary(ctx context.Context, root, entry string) (string, error) {
	args := []string{"new", "--bin", entry}

	// Only the real runner needs the binary on PATH.
	if _, ok := i.Runner.(*RealRunner); ok {
		if _, err := exec.LookPath(i.Tool); err != nil {
			return "", &ToolError{Tool: i.Tool, Args: args, Cause: err}
		}
	}

	res, err := i.Runner.Run(ctx, root, i.Tool, args...)
	if err != nil {
		return "", &ToolError{Tool: i.Tool, Args: args, Stderr: res.Stderr, Cause: err}
	}
	if res.ExitCode != 0 {
		return "", &ToolError{Tool: i.Tool, Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	return filepath.Join(root, entry, "src"), nil
}
