// Package workspace inspects and edits the Cargo workspace that holds the daily entries.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Exists reports whether an entry directory is already present under root.
// A regular file with the entry's name is reported as an error.
func Exists(root, entry string) (bool, error) {
	path := filepath.Join(root, entry)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("%s exists but is not a directory", path)
	}
	return true, nil
}
