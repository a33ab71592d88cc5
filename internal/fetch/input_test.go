package fetch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf", "123\r\n456\r\n", "123\n456\n"},
		{"lf untouched", "123\n456\n", "123\n456\n"},
		{"lone cr", "a\rb\r", "a\nb\n"},
		{"mixed", "a\r\nb\nc\r", "a\nb\nc\n"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeNewlines(tt.in))
		})
	}
}

func TestWriteInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")

	require.NoError(t, WriteInput(path, "123\r\n456\r\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "123\n456\n", string(data))
	assert.NotContains(t, string(data), "\r")
}

func TestWriteInput_MissingDir(t *testing.T) {
	err := WriteInput(filepath.Join(t.TempDir(), "nope", "input.txt"), "1\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write input file")
}
