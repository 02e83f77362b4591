package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName   = "Recaf"
	configSubdir = "config"

	// EnvConfigDir overrides the configuration directory.
	EnvConfigDir = "RECAF_CONFIG_DIR"
)

// userConfigDir is a package-level variable so tests can redirect it.
var userConfigDir = os.UserConfigDir

// BaseDirectory returns the platform application-data directory for recaf,
// e.g. ~/.config/Recaf on Linux or %AppData%\Recaf on Windows.
func BaseDirectory() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(dir, appDirName), nil
}

// Subdirectory returns a named folder inside BaseDirectory.
func Subdirectory(name string) (string, error) {
	base, err := BaseDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, name), nil
}

// DefaultDirectory returns the directory holding section files. RECAF_CONFIG_DIR
// takes precedence over the platform location.
func DefaultDirectory() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	return Subdirectory(configSubdir)
}
