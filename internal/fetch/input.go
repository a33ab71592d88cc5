package fetch

import (
	"fmt"
	"os"
	"strings"
)

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// WriteInput writes body to path with LF-only line endings, whatever the
// host platform's convention.
func WriteInput(path, body string) error {
	if err := os.WriteFile(path, []byte(NormalizeNewlines(body)), 0644); err != nil {
		return fmt.Errorf("failed to write input file %s: %w", path, err)
	}
	return nil
}
