package config

import (
	"fmt"
	"os"
)

// GetHaikuHome returns the directory configuration is loaded from.
// Priority order:
//  1. HAIKU_HOME environment variable (if set)
//  2. Current working directory
//
// The returned directory is expected to contain .haiku/config.yaml; it is not created.
func GetHaikuHome() (string, error) {
	if home := os.Getenv("HAIKU_HOME"); home != "" {
		return home, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}
