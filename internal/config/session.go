package config

import (
	"fmt"
	"os"
	"strings"
)

// LoadSession reads the session token from path, trimmed of surrounding
// whitespace. The file is a one-time setup step: the operator copies the
// session cookie from a logged-in browser into it.
func LoadSession(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("session file %s not found: save your session cookie there first: %w", path, err)
		}
		return "", fmt.Errorf("failed to read session file %s: %w", path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("session file %s is empty", path)
	}

	return token, nil
}
