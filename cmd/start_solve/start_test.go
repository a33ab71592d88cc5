package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/aoc-start/internal/config"
	"github.com/jonathan/aoc-start/internal/puzzle"
	"github.com/jonathan/aoc-start/internal/scaffold"
)

type cargoStub struct {
	calls int
}

func (c *cargoStub) Run(_ context.Context, dir, _ string, args ...string) (scaffold.CmdResult, error) {
	c.calls++
	src := filepath.Join(dir, args[len(args)-1], "src")
	return scaffold.CmdResult{}, os.MkdirAll(src, 0755)
}

func setupCLITest(t *testing.T, status int, body string) (string, *cargoStub, *atomic.Int32) {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte("[workspace]\nmembers = [\"day01\"]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "session.txt"), []byte("cli-token\n"), 0600))

	hits := new(atomic.Int32)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	t.Setenv(config.EnvBaseURL, server.URL)
	t.Setenv(config.EnvSessionFile, "")

	stub := &cargoStub{}
	origRunner, origNow := commandRunner, now
	commandRunner = stub
	now = func() time.Time { return time.Date(2023, time.December, 7, 6, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		commandRunner, now = origRunner, origNow
		flagYear, flagDay, flagDir, flagDescribe = 0, 0, ".", false
		configPath, verbose = "", false
	})

	return root, stub, hits
}

func execCLI(args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestStart_Fresh(t *testing.T) {
	root, stub, hits := setupCLITest(t, http.StatusOK, "1\r\n2\r\n")

	stdout, _, err := execCLI("--dir", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "DAY07 READY")
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, int32(1), hits.Load())

	data, err := os.ReadFile(filepath.Join(root, "day07", "src", "input.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", string(data))
}

func TestStart_AlreadyExists(t *testing.T) {
	root, stub, hits := setupCLITest(t, http.StatusOK, "1\n")
	require.NoError(t, os.Mkdir(filepath.Join(root, "day07"), 0755))

	stdout, _, err := execCLI("--dir", root)
	require.NoError(t, err)

	assert.Equal(t, "day07 already exists.\n", stdout)
	assert.Zero(t, stub.calls)
	assert.Zero(t, hits.Load())
}

func TestStart_ExplicitDay(t *testing.T) {
	root, _, _ := setupCLITest(t, http.StatusOK, "1\n")

	_, _, err := execCLI("--dir", root, "--day", "12")
	require.NoError(t, err)

	assert.DirExists(t, filepath.Join(root, "day12"))
	assert.NoDirExists(t, filepath.Join(root, "day07"))
}

func TestStart_InputNotUnlocked(t *testing.T) {
	root, _, _ := setupCLITest(t, http.StatusNotFound, "Please don't repeatedly request this endpoint before it unlocks!")

	_, stderr, err := execCLI("--dir", root)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "fetch_input failed (network)")
	assert.Contains(t, stderr, "DAY07 RUN ABORTED")
	assert.NoFileExists(t, filepath.Join(root, "day07", "src", "input.txt"))
}

func TestStart_InvalidDay(t *testing.T) {
	root, stub, _ := setupCLITest(t, http.StatusOK, "1\n")

	_, _, err := execCLI("--dir", root, "--day", "30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid puzzle date")
	assert.Zero(t, stub.calls)
}

func TestStart_RejectsArgs(t *testing.T) {
	root, _, _ := setupCLITest(t, http.StatusOK, "1\n")

	_, _, err := execCLI("--dir", root, "day07")
	require.Error(t, err)
}

func TestInput_Refetch(t *testing.T) {
	root, stub, hits := setupCLITest(t, http.StatusOK, "9\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "day07", "src"), 0755))

	stdout, _, err := execCLI("input", "--dir", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, filepath.Join(root, "day07", "src", "input.txt"))
	assert.Zero(t, stub.calls)
	assert.Equal(t, int32(1), hits.Load())
}

func TestVersion(t *testing.T) {
	setupCLITest(t, http.StatusOK, "")

	stdout, _, err := execCLI("version")
	require.NoError(t, err)
	assert.Equal(t, "start_solve dev (none)\n", stdout)
}

func TestSelectedDate(t *testing.T) {
	ref := time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC)
	t.Cleanup(func() { flagYear, flagDay = 0, 0 })

	flagYear, flagDay = 0, 0
	assert.Equal(t, puzzle.Date{}, selectedDate(ref))

	flagYear, flagDay = 2021, 0
	assert.Equal(t, puzzle.Date{Year: 2021, Day: 5}, selectedDate(ref))

	flagYear, flagDay = 0, 9
	assert.Equal(t, puzzle.Date{Year: 2024, Day: 9}, selectedDate(ref))
}
